package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"esgtrack/internal/esg/models"
)

type InitiativeSuite struct {
	suite.Suite
	start time.Time
}

func TestInitiativeSuite(t *testing.T) {
	suite.Run(t, new(InitiativeSuite))
}

func (s *InitiativeSuite) SetupTest() {
	s.start = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func (s *InitiativeSuite) initiative(status models.InitiativeStatus, days int) *models.Initiative {
	return &models.Initiative{
		Name:      "Solar Rollout",
		Status:    status,
		StartDate: s.start,
		EndDate:   s.start.AddDate(0, 0, days),
	}
}

func (s *InitiativeSuite) TestProgress() {
	i := s.initiative(models.InitiativeOngoing, 100)

	s.Equal(0.0, i.Progress(s.start.AddDate(0, 0, -5)))
	s.Equal(0.0, i.Progress(s.start))
	s.Equal(25.0, i.Progress(s.start.AddDate(0, 0, 25)))
	s.Equal(100.0, i.Progress(s.start.AddDate(0, 0, 150)))

	s.Run("same-day initiative counts one planned day", func() {
		i := s.initiative(models.InitiativeOngoing, 0)
		s.Equal(100.0, i.Progress(s.start.AddDate(0, 0, 1)))
	})
}

func (s *InitiativeSuite) TestActivityPerformance() {
	at := s.start.AddDate(0, 0, 60)

	s.Equal(models.PerformanceGreen, s.initiative(models.InitiativeCompleted, 100).ActivityPerformance(at))
	s.Equal(models.PerformanceGreen, s.initiative(models.InitiativeOngoing, 100).ActivityPerformance(at))
	s.Equal(models.PerformanceRed, s.initiative(models.InitiativeOngoing, 200).ActivityPerformance(at))
	s.Equal(models.PerformanceRed, s.initiative(models.InitiativePlanned, 100).ActivityPerformance(at))
}

func (s *InitiativeSuite) TestNewInitiative() {
	valid := models.Initiative{
		Name:              "Solar Rollout",
		Company:           "ACME",
		RelatedPolicy:     "Carbon Policy",
		Category:          models.CategoryEnvironmental,
		ResponsiblePerson: "EMP-001",
		StartDate:         s.start,
		EndDate:           s.start.AddDate(0, 6, 0),
	}

	s.Run("defaults priority and status", func() {
		i, err := models.NewInitiative(valid, s.start)
		s.Require().NoError(err)
		s.Equal(models.PriorityMedium, i.Priority)
		s.Equal(models.InitiativePlanned, i.Status)
	})

	s.Run("rejects end before start", func() {
		in := valid
		in.EndDate = s.start.AddDate(0, 0, -1)
		_, err := models.NewInitiative(in, s.start)
		s.Require().Error(err)
	})

	s.Run("closed initiatives keep their status", func() {
		i := s.initiative(models.InitiativeCompleted, 10)
		s.Require().Error(i.SetStatus(models.InitiativeOngoing))
		s.Require().NoError(i.SetStatus(models.InitiativeCompleted))
	})
}
