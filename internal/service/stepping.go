package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"stepping_debug/internal/models"
	"stepping_debug/internal/repository"
)

type SteppingService struct {
	repo repository.SteppingRepo
}

func NewSteppingService(repo repository.SteppingRepo) *SteppingService {
	return &SteppingService{repo: repo}
}

var (
	ErrInvalidMachineIP = errors.New("machine_ip must be an IP address")
	ErrEmptyChunkID     = errors.New("chunk_id is empty")
	ErrEmptyEventType   = errors.New("event_type is empty")
	ErrEmptyBatch       = errors.New("no events to record")
)

// normalizeEvent trims identifiers, uppercases the event type and moves StartAt to UTC.
func normalizeEvent(e models.SteppingEvent) models.SteppingEvent {
	e.MachineIP = strings.TrimSpace(e.MachineIP)
	e.ChunkID = strings.TrimSpace(e.ChunkID)
	e.EventType = strings.ToUpper(strings.TrimSpace(e.EventType))
	if !e.StartAt.IsZero() {
		e.StartAt = e.StartAt.UTC()
	}
	return e
}

func validateEvent(e models.SteppingEvent) error {
	if net.ParseIP(e.MachineIP) == nil {
		return fmt.Errorf("%w: %q", ErrInvalidMachineIP, e.MachineIP)
	}
	if e.ChunkID == "" {
		return ErrEmptyChunkID
	}
	if e.EventType == "" {
		return ErrEmptyEventType
	}
	return nil
}

// Record validates and stores one event.
func (s *SteppingService) Record(ctx context.Context, e models.SteppingEvent) (models.SteppingEvent, error) {
	e = normalizeEvent(e)
	if err := validateEvent(e); err != nil {
		return models.SteppingEvent{}, err
	}
	return s.repo.Append(ctx, e)
}

// RecordBatch validates the whole batch first, then stores events in order.
// It stops at the first failure; events stored before it stay stored.
func (s *SteppingService) RecordBatch(ctx context.Context, events []models.SteppingEvent) ([]models.SteppingEvent, error) {
	if len(events) == 0 {
		return nil, ErrEmptyBatch
	}

	prepared := make([]models.SteppingEvent, len(events))
	now := time.Now().UTC()
	for i, e := range events {
		e = normalizeEvent(e)
		if err := validateEvent(e); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		if e.StartAt.IsZero() {
			e.StartAt = now
		}
		prepared[i] = e
	}

	out := make([]models.SteppingEvent, 0, len(prepared))
	for i, e := range prepared {
		stored, err := s.repo.Append(ctx, e)
		if err != nil {
			return out, fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, stored)
	}
	return out, nil
}
