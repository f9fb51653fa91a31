package service

import (
	"context"
	"fmt"
	"log"

	"taskflow/internal/authz"
	apperrors "taskflow/internal/errors"
	"taskflow/internal/models"
	"taskflow/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TeamService handles team operations.
type TeamService struct {
	teamRepo   repository.TeamRepository
	userRepo   repository.UserRepository
	authorizer authz.Authorizer
	effects    Effects
	promoter   *PromotionEngine
}

// NewTeamService creates a new TeamService.
func NewTeamService(
	teamRepo repository.TeamRepository,
	userRepo repository.UserRepository,
	authorizer authz.Authorizer,
	effects Effects,
	promoter *PromotionEngine,
) *TeamService {
	return &TeamService{
		teamRepo:   teamRepo,
		userRepo:   userRepo,
		authorizer: authorizer,
		effects:    effects,
		promoter:   promoter,
	}
}

// Create creates a team with the actor as owner, lead and sole member.
// Members cannot create teams; they first earn the lead role.
func (s *TeamService) Create(ctx context.Context, actor *models.User, req *models.CreateTeamRequest) (*models.Team, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if !models.RoleAtLeast(actor.Role, models.RoleLead) {
		return nil, apperrors.ErrMemberCannotOwn
	}

	team := &models.Team{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     actor.ID,
		LeadID:      actor.ID,
		MemberIDs:   []primitive.ObjectID{actor.ID},
	}

	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, err
	}

	s.bumpStat(ctx, actor.ID, models.StatGroupsCreated)

	s.effects.LogActivity(&models.ActivityEntry{
		UserID:  actor.ID,
		Action:  models.ActivityTeamCreated,
		Details: fmt.Sprintf("Created team %q", team.Name),
		TeamID:  &team.ID,
	})

	return team, nil
}

// Get returns a team the actor may see.
func (s *TeamService) Get(ctx context.Context, actor *models.User, id primitive.ObjectID) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authorizer.CanPerformTeam(ctx, actor, team, authz.ActionView)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	return team, nil
}

// List returns the teams the actor belongs to. A storage failure degrades
// to an empty list.
func (s *TeamService) List(ctx context.Context, actor *models.User) ([]models.Team, error) {
	if actor == nil {
		return nil, apperrors.ErrUnauthorized
	}

	teams, err := s.teamRepo.FindByMember(ctx, actor.ID)
	if err != nil {
		log.Printf("Failed to list teams for user %s: %v", actor.ID.Hex(), err)
		return []models.Team{}, nil
	}
	return teams, nil
}

// Invite adds a user, looked up by email, to the team's member set and
// notifies them. Inviting an existing member is rejected before any write.
func (s *TeamService) Invite(ctx context.Context, actor *models.User, teamID primitive.ObjectID, email string) (*models.Team, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.authorizer.CanPerformTeam(ctx, actor, team, authz.ActionInvite)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.ErrPermissionDenied
	}

	invitee, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if team.HasMember(invitee.ID) {
		return nil, apperrors.ErrAlreadyMember
	}

	if err := s.teamRepo.AddMember(ctx, teamID, invitee.ID); err != nil {
		return nil, err
	}

	s.effects.Notify(&models.Notification{
		UserID:  invitee.ID,
		Type:    models.NotificationTeamInvite,
		Title:   "Added to a team",
		Message: fmt.Sprintf("%s added you to the team %q", actor.DisplayName, team.Name),
		TeamID:  &team.ID,
	})
	s.effects.LogActivity(&models.ActivityEntry{
		UserID:       actor.ID,
		Action:       models.ActivityTeamInvite,
		Details:      fmt.Sprintf("Added %s to team %q", invitee.Email, team.Name),
		TeamID:       &team.ID,
		TargetUserID: &invitee.ID,
	})

	team.MemberIDs = append(team.MemberIDs, invitee.ID)
	return team, nil
}

func (s *TeamService) bumpStat(ctx context.Context, userID primitive.ObjectID, stat string) {
	updated, err := s.userRepo.IncrementStat(ctx, userID, stat, 1)
	if err != nil {
		log.Printf("Failed to increment %s for user %s: %v", stat, userID.Hex(), err)
		return
	}

	if _, _, err := s.promoter.Check(ctx, updated); err != nil {
		log.Printf("Promotion check failed for user %s: %v", userID.Hex(), err)
	}
}
