package processing

import (
	"bytes"
	"context"
	"path"
	"strings"

	"palette/cache"
	"palette/models"
	"palette/storage"
	"palette/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const thumbMimeType = "image/jpeg"

// thumb stores a small JPEG next to every image attachment
type thumb struct {
	db      *gorm.DB
	storage storage.StorageAPI
	cache   cache.Cache
	size    uint
}

func (t *thumb) getName() string {
	return "thumb"
}

func (t *thumb) shouldHandle(file *models.MyFile) bool {
	return file.IsImage() && file.ThumbFileName == ""
}

// thumbPath maps "post/<id>.png" to "thumb/<id>.jpg"
func thumbPath(storeFileName string) string {
	name := path.Base(storeFileName)
	name = strings.TrimSuffix(name, path.Ext(name))
	return storage.ThumbFilesLocation + "/" + name + ".jpg"
}

func (t *thumb) process(ctx context.Context, file *models.MyFile) int {
	src := bytes.Buffer{}
	if _, err := t.storage.Load(ctx, file.StoreFileName, &src); err != nil {
		log.Warnf("Cannot load file %d (%s): %v", file.ID, file.StoreFileName, err)
		return FailedStorage
	}
	out := bytes.Buffer{}
	result, err := utils.CreateThumb(t.size, &src, &out)
	if err != nil {
		log.Warnf("Error creating thumbnail for file %d (%s): %v", file.ID, file.StoreFileName, err)
		return Failed
	}
	thumbName := thumbPath(file.StoreFileName)
	if _, err = t.storage.Save(ctx, thumbName, &out, thumbMimeType); err != nil {
		log.Warnf("Cannot save thumbnail %s: %v", thumbName, err)
		return FailedStorage
	}
	if err = t.db.WithContext(ctx).Model(file).Update("thumb_file_name", thumbName).Error; err != nil {
		log.Errorf("Error saving thumbnail of file %d: %v", file.ID, err)
		if err = t.storage.Delete(ctx, thumbName); err != nil {
			log.Warnf("Cannot delete thumbnail %s: %v", thumbName, err)
		}
		return Failed
	}
	// Cached post responses still point at the full size file
	if err = t.cache.Delete(ctx, cache.PostKey(file.PostID)); err != nil {
		log.Warnf("Cannot invalidate post %d: %v", file.PostID, err)
	}
	log.Debugf("Thumbnail %s: %dx%d -> %dx%d, %d bytes", thumbName, result.OldX, result.OldY, result.NewX, result.NewY, result.ThumbSize)
	return Done
}
