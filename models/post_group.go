package models

import (
	"github.com/zsefvlol/timezonemapper"
)

// PostGroup is a trip of a Group: posts written in it share its region and period
type PostGroup struct {
	ID        uint64 `gorm:"primaryKey"`
	CreatedAt int64
	UpdatedAt int64
	GroupID   uint64   `gorm:"not null;index"`
	Group     *Group   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title     string   `gorm:"type:varchar(300)"`
	Region    string   `gorm:"type:varchar(100);index"`
	Period    Period   `gorm:"embedded;embeddedPrefix:period_"`
	GpsLat    *float64
	GpsLong   *float64
	Timezone  string   `gorm:"type:varchar(64)"`
	Posts     []Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func NewPostGroup(groupID uint64, title, region string, period Period, gpsLat, gpsLong *float64) PostGroup {
	pg := PostGroup{
		GroupID: groupID,
		Title:   title,
		Region:  region,
		Period:  period,
		GpsLat:  gpsLat,
		GpsLong: gpsLong,
	}
	pg.Timezone = pg.lookupTimezone()
	return pg
}

func (pg *PostGroup) lookupTimezone() string {
	if pg.GpsLat == nil || pg.GpsLong == nil {
		return ""
	}
	return timezonemapper.LatLngToTimezoneString(*pg.GpsLat, *pg.GpsLong)
}
