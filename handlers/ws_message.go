package handlers

type WSMessageType string

const (
	WSMessageTypeNewPost WSMessageType = "new_post"
)

type WSMessage struct {
	Type        WSMessageType `json:"type"`
	GroupID     uint64        `json:"groupId"`
	PostGroupID uint64        `json:"postGroupId"`
	PostID      uint64        `json:"postId"`
	Title       string        `json:"title"`
	WriterID    uint64        `json:"writerId"`
	WriterName  string        `json:"writerName"`
}
