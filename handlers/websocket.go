package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"palette/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	cmap "github.com/orcaman/concurrent-map/v2"
	log "github.com/sirupsen/logrus"
)

const writeWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// SendSocketFunc returns true if data was successfully sent
type SendSocketFunc func([]byte) bool
type ConnectedClient struct {
	fun SendSocketFunc
}

// ConnectedClients is needed as a member may be connected more than once
type ConnectedClients []*ConnectedClient

type memberIDLister interface {
	MemberIDs(ctx context.Context, groupID uint64) ([]uint64, error)
}

// Feed pushes live events to the connected members of a group
type Feed struct {
	groups  memberIDLister
	members cmap.ConcurrentMap[string, ConnectedClients]
}

func NewFeed(groups memberIDLister) *Feed {
	return &Feed{
		groups:  groups,
		members: cmap.New[ConnectedClients](),
	}
}

func socketID(memberID uint64) string {
	return strconv.FormatUint(memberID, 10)
}

func (f *Feed) addClient(id string, c *ConnectedClient) {
	f.members.Upsert(id, ConnectedClients{c}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if exist {
			return append(valueInMap, c)
		}
		return newValue
	})
}

func (f *Feed) removeClient(id string, c *ConnectedClient) {
	f.members.Upsert(id, ConnectedClients{}, func(exist bool, valueInMap, newValue ConnectedClients) ConnectedClients {
		if !exist {
			return newValue
		}
		for _, oc := range valueInMap {
			if oc == c {
				continue
			}
			newValue = append(newValue, oc)
		}
		return newValue
	})
	f.members.RemoveCb(id, func(key string, v ConnectedClients, exists bool) bool {
		return exists && len(v) == 0
	})
}

func (f *Feed) WebSocket(c *gin.Context, member *models.Member) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("upgrade: %v", err)
		return
	}
	defer conn.Close()

	// Setup client, writes come from other requests' goroutines
	var writeMutex sync.Mutex
	isConnected := true
	id := socketID(member.ID)
	client := ConnectedClient{}
	client.fun = func(data []byte) bool {
		writeMutex.Lock()
		defer writeMutex.Unlock()
		if !isConnected {
			return false
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Debugf("write err: %v", err)
			isConnected = false
			return false
		}
		return true
	}
	f.addClient(id, &client)
	defer f.removeClient(id, &client)
	// Main read cycle
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			log.Debugf("read err: %v", err)
			writeMutex.Lock()
			isConnected = false
			writeMutex.Unlock()
			break
		}
		if string(message) == "ping" {
			client.fun([]byte("pong"))
		}
	}
}

// Send delivers data to every connection of the member, returns the number of successful sends
func (f *Feed) Send(memberID uint64, data []byte) (sent int) {
	clients, ok := f.members.Get(socketID(memberID))
	if !ok {
		return
	}
	for _, c := range clients {
		if c.fun(data) {
			sent++
		}
	}
	return
}

// NotifyNewPost tells the other members of the group about a new post
func (f *Feed) NotifyNewPost(ctx context.Context, groupID uint64, post *models.Post, writer *models.Member) {
	ids, err := f.groups.MemberIDs(ctx, groupID)
	if err != nil {
		log.Warnf("Cannot list members of group %d: %v", groupID, err)
		return
	}
	data, err := json.Marshal(WSMessage{
		Type:        WSMessageTypeNewPost,
		GroupID:     groupID,
		PostGroupID: post.PostGroupID,
		PostID:      post.ID,
		Title:       post.Title,
		WriterID:    writer.ID,
		WriterName:  writer.Name,
	})
	if err != nil {
		log.Errorf("Cannot encode new post message: %v", err)
		return
	}
	for _, id := range ids {
		if id != writer.ID {
			f.Send(id, data)
		}
	}
}
