package interfaces

import "mihrab/internal/models"

type SchedulerInterface interface {
	Init()
	Stop()
	Replan() error
	SetCategoryEnabled(category models.Category, enabled bool) error
	Restore() error
	Persist() error
}
