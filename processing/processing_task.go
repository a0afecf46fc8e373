package processing

import (
	"sort"
	"strconv"
	"strings"

	"palette/models"

	log "github.com/sirupsen/logrus"
)

const (
	Skipped       = 0
	Done          = 2
	Failed        = 3
	FailedStorage = 4
)

type ProcessingTask struct {
	FileID uint64        `gorm:"primaryKey;autoIncrement:false"`
	File   models.MyFile `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Status string        `gorm:"type:varchar(1024)"` // Contains comma-separated pairs of task and status, e.g. "thumb:2,another:0"
}

func (pt *ProcessingTask) statusToMap() map[string]int {
	result := map[string]int{}
	if pt.Status == "" {
		return result
	}
	for _, v := range strings.Split(pt.Status, ",") {
		current := strings.Split(v, ":")
		if len(current) != 2 {
			log.Warnf("Task status contains invalid chars, file: %d, status: %s", pt.FileID, pt.Status)
			continue
		}
		result[current[0]], _ = strconv.Atoi(current[1])
	}
	return result
}

func (pt *ProcessingTask) updateWith(statusMap map[string]int) {
	result := []string{}
	for k, v := range statusMap {
		result = append(result, k+":"+strconv.Itoa(v))
	}
	sort.Strings(result)
	pt.Status = strings.Join(result, ",")
}
