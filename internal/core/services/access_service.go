package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/smartentrance/backend/internal/core/ports"
)

type accessControl struct {
	buildingRepo ports.BuildingRepository
	unitRepo     ports.UnitRepository
	pollRepo     ports.PollRepository
}

func NewAccessControl(buildingRepo ports.BuildingRepository, unitRepo ports.UnitRepository, pollRepo ports.PollRepository) ports.AccessControl {
	return &accessControl{
		buildingRepo: buildingRepo,
		unitRepo:     unitRepo,
		pollRepo:     pollRepo,
	}
}

func (a *accessControl) HasManagementRights(ctx context.Context, buildingID, userID uuid.UUID) bool {
	ok, err := a.buildingRepo.ExistsWithManager(ctx, buildingID, userID)
	if err != nil {
		return false
	}
	return ok
}

func (a *accessControl) HasMembership(ctx context.Context, buildingID, userID uuid.UUID) bool {
	if a.HasManagementRights(ctx, buildingID, userID) {
		return true
	}
	ok, err := a.unitRepo.ExistsResponsibleInBuilding(ctx, buildingID, userID)
	if err != nil {
		return false
	}
	return ok
}

func (a *accessControl) CanCastVote(ctx context.Context, pollID, unitID, userID uuid.UUID) bool {
	poll, err := a.pollRepo.GetByID(ctx, pollID)
	if err != nil || poll == nil {
		return false
	}
	unit, err := a.unitRepo.GetByID(ctx, unitID)
	if err != nil || unit == nil {
		return false
	}

	isResponsible := unit.ResponsibleUserID != nil && *unit.ResponsibleUserID == userID
	sameBuilding := unit.BuildingID == poll.BuildingID

	return isResponsible && sameBuilding
}

func (a *accessControl) CanManagePoll(ctx context.Context, pollID, userID uuid.UUID) bool {
	poll, err := a.pollRepo.GetByID(ctx, pollID)
	if err != nil || poll == nil {
		return false
	}
	return a.HasManagementRights(ctx, poll.BuildingID, userID)
}
