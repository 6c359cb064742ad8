// Copyright (c) 2026 Kanoon. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package camp_test

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/kanoon/kanoon/internal/core/camp"
	"github.com/kanoon/kanoon/internal/platform/apperr"
	"github.com/kanoon/kanoon/internal/platform/memtable"
	"github.com/kanoon/kanoon/pkg/pagination"
)

var errReferenced = errors.New("camp is referenced by a report")

type memoryRepository struct {
	camps        *memtable.Table[camp.Camp]
	participants *memtable.Table[camp.Participant]
	// reported holds camp ids that a report points at.
	reported map[int64]bool
}

func newTestService() (*camp.Service, *memoryRepository) {
	repo := &memoryRepository{
		camps:        memtable.New[camp.Camp](),
		participants: memtable.New[camp.Participant](),
		reported:     map[int64]bool{},
	}
	tx := memtable.NewTx(repo.camps, repo.participants)
	return camp.NewService(repo, tx, slog.New(slog.NewTextHandler(io.Discard, nil))), repo
}

func byID(id int64) func(camp.Camp) bool {
	return func(c camp.Camp) bool { return c.ID == id }
}

func byKey(campID, userID int64) func(camp.Participant) bool {
	return func(p camp.Participant) bool { return p.CampID == campID && p.UserID == userID }
}

func (repo *memoryRepository) List(_ context.Context, params pagination.Params) ([]*camp.Camp, int, error) {
	items, total := memtable.Page(repo.camps.Select(nil), params)
	return items, total, nil
}

func (repo *memoryRepository) Get(_ context.Context, id int64) (*camp.Camp, error) {
	found, ok := repo.camps.Find(byID(id))
	if !ok {
		return nil, apperr.NotFound("Camp")
	}
	return &found, nil
}

func (repo *memoryRepository) Create(_ context.Context, c *camp.Camp) error {
	c.ID = repo.camps.NextID()
	repo.camps.Insert(*c)
	return nil
}

func (repo *memoryRepository) Update(_ context.Context, c *camp.Camp) error {
	if !repo.camps.Replace(byID(c.ID), *c) {
		return apperr.NotFound("Camp")
	}
	return nil
}

func (repo *memoryRepository) Delete(_ context.Context, id int64) error {
	if repo.reported[id] {
		return apperr.Conflict("Camp is still referenced").WithCause(errReferenced)
	}
	if repo.camps.Remove(byID(id)) == 0 {
		return apperr.NotFound("Camp")
	}
	return nil
}

func (repo *memoryRepository) ListParticipants(_ context.Context, campID int64, params pagination.Params) ([]*camp.Participant, int, error) {
	items, total := memtable.Page(repo.participants.Select(func(p camp.Participant) bool { return p.CampID == campID }), params)
	return items, total, nil
}

func (repo *memoryRepository) GetParticipant(_ context.Context, campID, userID int64) (*camp.Participant, error) {
	found, ok := repo.participants.Find(byKey(campID, userID))
	if !ok {
		return nil, apperr.NotFound("Camp participant")
	}
	return &found, nil
}

func (repo *memoryRepository) AddParticipant(_ context.Context, p *camp.Participant) error {
	if repo.participants.Any(byKey(p.CampID, p.UserID)) {
		return apperr.Conflict("Duplicate value violates camp_user_pkey")
	}
	repo.participants.Insert(*p)
	return nil
}

func (repo *memoryRepository) UpdateParticipant(_ context.Context, p *camp.Participant) error {
	if !repo.participants.Replace(byKey(p.CampID, p.UserID), *p) {
		return apperr.NotFound("Camp participant")
	}
	return nil
}

func (repo *memoryRepository) RemoveParticipant(_ context.Context, campID, userID int64) error {
	if repo.participants.Remove(byKey(campID, userID)) == 0 {
		return apperr.NotFound("Camp participant")
	}
	return nil
}

func (repo *memoryRepository) RemoveParticipants(_ context.Context, campID int64) error {
	repo.participants.Remove(func(p camp.Participant) bool { return p.CampID == campID })
	return nil
}
