package app

import "goforum/internal/model"

type ActivityService struct {
	activities ActivityStore
}

func NewActivityService(activities ActivityStore) *ActivityService {
	return &ActivityService{activities: activities}
}

func (s *ActivityService) ListRecent(limit int) ([]model.Activity, error) {
	return s.activities.ListRecent(limit)
}
