package utils

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"time"

	"github.com/nfnt/resize"
)

// GetSeason of the given month, shifted by half a year south of the equator
func GetSeason(month time.Month, gpsLat *float64) string {
	if gpsLat != nil && *gpsLat < 0 {
		month = (month+5)%12 + 1
	}
	if month >= 3 && month <= 5 {
		return "Spring"
	} else if month >= 6 && month <= 8 {
		return "Summer"
	} else if month >= 9 && month <= 11 {
		return "Autumn/Fall"
	}
	return "Winter"
}

func GetDatesString(min, max int64) string {
	if min == 0 || max == 0 {
		return ""
	}
	minString := time.Unix(min, 0).UTC().Format("2 Jan 2006")
	if max-min < 86400 {
		return minString
	}
	maxString := time.Unix(max, 0).UTC().Format("2 Jan 2006")
	return minString + " - " + maxString
}

type ImageThumbConverted struct {
	ThumbSize int64
	NewX      uint16
	NewY      uint16
	OldX      uint16
	OldY      uint16
}

func CreateThumb(size uint, reader io.Reader, writer io.Writer) (result ImageThumbConverted, err error) {
	image, _, err := image.Decode(reader)
	if err != nil {
		return result, err
	}
	var newBuf bytes.Buffer
	newImage := resize.Thumbnail(size, size, image, resize.Lanczos3)
	if err = jpeg.Encode(&newBuf, newImage, &jpeg.Options{Quality: 90}); err != nil {
		return
	}
	imageRect := newImage.Bounds().Size()
	result.NewX = uint16(imageRect.X)
	result.NewY = uint16(imageRect.Y)

	imageRect = image.Bounds().Size()
	result.OldX = uint16(imageRect.X)
	result.OldY = uint16(imageRect.Y)

	result.ThumbSize, err = io.Copy(writer, &newBuf)
	return
}
