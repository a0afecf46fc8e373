package processing

import (
	"context"
	"time"

	"palette/cache"
	"palette/metrics"
	"palette/models"
	"palette/storage"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type processingTask interface {
	getName() string
	process(context.Context, *models.MyFile) int
	shouldHandle(*models.MyFile) bool
}

// Processor runs every registered task once over each uploaded file
type Processor struct {
	db    *gorm.DB
	tasks map[string]processingTask
	cron  *cron.Cron
}

func Migrate(tx *gorm.DB) error {
	return tx.AutoMigrate(&ProcessingTask{})
}

func New(db *gorm.DB, s storage.StorageAPI, c cache.Cache, thumbSize uint) *Processor {
	if c == nil {
		c = cache.Nop{}
	}
	p := &Processor{db: db, tasks: map[string]processingTask{}}
	p.registerTask(&thumb{db: db, storage: s, cache: c, size: thumbSize})
	return p
}

func (p *Processor) registerTask(t processingTask) {
	p.tasks[t.getName()] = t
}

// Start schedules processPending, overlapping runs are skipped
func (p *Processor) Start(schedule string) error {
	if err := Migrate(p.db); err != nil {
		return err
	}
	p.cron = cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	if _, err := p.cron.AddFunc(schedule, func() { p.processPending(context.Background()) }); err != nil {
		return err
	}
	p.cron.Start()
	log.Infof("File processing scheduled %q with %d tasks", schedule, len(p.tasks))
	return nil
}

// Stop waits for a running pass to finish
func (p *Processor) Stop() {
	if p.cron != nil {
		<-p.cron.Stop().Done()
	}
}

type pendingFile struct {
	ID     uint64
	Status string
	FileID *uint64
}

// processPending handles files without a processing_tasks record, or with
// fewer task results than there are tasks now
func (p *Processor) processPending(ctx context.Context) {
	pending := []pendingFile{}
	err := p.db.WithContext(ctx).
		Table("my_files").
		Joins("LEFT JOIN processing_tasks ON (my_files.id = processing_tasks.file_id)").
		Select("my_files.id AS id, COALESCE(processing_tasks.status, '') AS status, processing_tasks.file_id AS file_id").
		Where("processing_tasks.status IS NULL OR "+
			"LENGTH(processing_tasks.status)-LENGTH(REPLACE(processing_tasks.status, ',', ''))+1 < ?", len(p.tasks)).
		Order("my_files.id").
		Scan(&pending).Error
	if err != nil {
		log.Errorf("processPending error: %v", err)
		return
	}
	for _, row := range pending {
		file := models.MyFile{}
		if err = p.db.WithContext(ctx).First(&file, row.ID).Error; err != nil {
			log.Warnf("processPending load file error: %v", err)
			continue
		}
		current := ProcessingTask{FileID: file.ID, Status: row.Status}
		statusMap := current.statusToMap()
		for taskName, task := range p.tasks {
			if _, ok := statusMap[taskName]; ok {
				// one try for each task
				continue
			}
			if !task.shouldHandle(&file) {
				statusMap[taskName] = Skipped
				continue
			}
			start := time.Now()
			statusMap[taskName] = task.process(ctx, &file)
			metrics.RecordTask(taskName, statusMap[taskName])
			log.Infof("Task %s, file: %d, result: %d, time: %v", taskName, file.ID, statusMap[taskName], time.Since(start).Milliseconds())
		}
		current.updateWith(statusMap)
		if row.FileID == nil {
			err = p.db.WithContext(ctx).Omit(clause.Associations).Create(&current).Error
		} else {
			err = p.db.WithContext(ctx).Omit(clause.Associations).Save(&current).Error
		}
		if err != nil {
			log.Errorf("processPending save task error: %v", err)
		}
	}
}
