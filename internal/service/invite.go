package service

import (
	"context"
	"crypto/rand"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/forgo/haven/api/internal/model"
)

// Fan-out ceiling for per-recipient user fetches during a group join
const groupFanoutLimit = 8

// Invite code alphabet, chosen to avoid ambiguous characters
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZabcdefghjkmnpqrstuvwxyz23456789"

// InviteRepository defines the interface for invite storage
type InviteRepository interface {
	InviteResolver
	Create(ctx context.Context, invite *model.Invite) error
	Delete(ctx context.Context, id string) error
	DeleteOrphaned(ctx context.Context) (int, error)
}

// ServerRepository defines the interface for server and membership storage
type ServerRepository interface {
	GetByID(ctx context.Context, id string) (*model.Server, error)
	IsMember(ctx context.Context, serverID, userID string) (bool, error)
	CountForUser(ctx context.Context, userID string) (int, error)
	CountMembers(ctx context.Context, serverID string) (int, error)
	CreateMember(ctx context.Context, serverID, userID string) ([]model.Channel, error)
}

// ChannelRepository defines the interface for channel storage
type ChannelRepository interface {
	GetByID(ctx context.Context, id string) (*model.Channel, error)
	AddRecipient(ctx context.Context, channelID, userID, invitedBy string) (*model.Channel, error)
}

// InviteService handles invite resolution and admission
type InviteService struct {
	inviteRepo  InviteRepository
	serverRepo  ServerRepository
	channelRepo ChannelRepository
	userRepo    UserRepository

	maxServersPerUser int
	maxGroupSize      int
}

// InviteServiceConfig holds configuration for the invite service
type InviteServiceConfig struct {
	InviteRepo  InviteRepository
	ServerRepo  ServerRepository
	ChannelRepo ChannelRepository
	UserRepo    UserRepository

	MaxServersPerUser int
	MaxGroupSize      int
}

// NewInviteService creates a new invite service
func NewInviteService(cfg InviteServiceConfig) *InviteService {
	return &InviteService{
		inviteRepo:        cfg.InviteRepo,
		serverRepo:        cfg.ServerRepo,
		channelRepo:       cfg.ChannelRepo,
		userRepo:          cfg.UserRepo,
		maxServersPerUser: cfg.MaxServersPerUser,
		maxGroupSize:      cfg.MaxGroupSize,
	}
}

// Join admits the acting user through an invite. Eligibility is checked
// before the invite is resolved: bots are rejected outright, then the
// server quota is enforced regardless of what the invite turns out to
// point at. Only after both pass is the invite resolved and dispatched
// on its kind. No membership write happens on any rejection path.
func (s *InviteService) Join(ctx context.Context, actorID, inviteID string) (*model.InviteJoinResult, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, ErrUserNotFound
	}

	if actor.IsBot() {
		return nil, ErrIsBot
	}

	count, err := s.serverRepo.CountForUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if count >= s.maxServersPerUser {
		return nil, ErrMaxServersReached
	}

	ref := NewInviteRef(inviteID)
	invite, err := ref.Resolve(ctx, s.inviteRepo)
	if err != nil {
		return nil, err
	}

	switch invite.Kind {
	case model.InviteKindServer:
		return s.joinServer(ctx, actor, invite)
	case model.InviteKindGroup:
		return s.joinGroup(ctx, actor, invite)
	default:
		return nil, fmt.Errorf("invite %s has unknown kind %q", invite.ID, invite.Kind)
	}
}

// joinServer admits the actor into the server a server invite points at.
// A dangling invite (deleted server) reads as not found. The membership
// write and the channel read run in one transaction, so a failure on
// either side leaves no partial membership.
func (s *InviteService) joinServer(ctx context.Context, actor *model.User, invite *model.Invite) (*model.InviteJoinResult, error) {
	server, err := s.serverRepo.GetByID(ctx, *invite.ServerID)
	if err != nil {
		return nil, err
	}
	if server == nil {
		return nil, ErrServerNotFound
	}

	isMember, err := s.serverRepo.IsMember(ctx, server.ID, actor.ID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, ErrAlreadyMember
	}

	channels, err := s.serverRepo.CreateMember(ctx, server.ID, actor.ID)
	if err != nil {
		if isDuplicateError(err) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}

	return &model.InviteJoinResult{
		Type:     model.InviteKindServer,
		Server:   server,
		Channels: channels,
	}, nil
}

// joinGroup admits the actor into the group channel a group invite points
// at. The recipient write carries the invite creator's id so the admission
// is attributed to whoever issued the invite. After the write, every other
// participant is fetched and projected relative to the actor. The fetches
// run concurrently but the
// returned views keep the channel's recipient order, and the whole
// projection fails if any single participant cannot be loaded.
func (s *InviteService) joinGroup(ctx context.Context, actor *model.User, invite *model.Invite) (*model.InviteJoinResult, error) {
	channel, err := s.channelRepo.GetByID(ctx, *invite.ChannelID)
	if err != nil {
		return nil, err
	}
	if channel == nil || !channel.IsGroup() {
		return nil, ErrGroupNotFound
	}

	if channel.HasRecipient(actor.ID) {
		return nil, ErrAlreadyInGroup
	}
	if len(channel.RecipientIDs) >= s.maxGroupSize {
		return nil, ErrGroupFull
	}

	updated, err := s.channelRepo.AddRecipient(ctx, channel.ID, actor.ID, invite.CreatorID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrGroupNotFound
	}

	users, err := s.projectRecipients(ctx, actor, updated.RecipientIDs)
	if err != nil {
		return nil, err
	}

	return &model.InviteJoinResult{
		Type:    model.InviteKindGroup,
		Channel: updated,
		Users:   users,
	}, nil
}

// projectRecipients loads every recipient except the actor and projects
// each into the actor's relative view. Results preserve input order.
func (s *InviteService) projectRecipients(ctx context.Context, actor *model.User, recipientIDs []string) ([]*model.RelativeUserView, error) {
	others := make([]string, 0, len(recipientIDs))
	for _, id := range recipientIDs {
		if id != actor.ID {
			others = append(others, id)
		}
	}

	views := make([]*model.RelativeUserView, len(others))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(groupFanoutLimit)
	for i, id := range others {
		g.Go(func() error {
			user, err := s.userRepo.GetByID(gctx, id)
			if err != nil {
				return err
			}
			if user == nil {
				return ErrUserNotFound
			}
			views[i] = user.RelativeTo(actor)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return views, nil
}

// GetPreview returns the public shape of an invite without joining
func (s *InviteService) GetPreview(ctx context.Context, inviteID string) (*model.InvitePreview, error) {
	ref := NewInviteRef(inviteID)
	invite, err := ref.Resolve(ctx, s.inviteRepo)
	if err != nil {
		return nil, err
	}

	preview := &model.InvitePreview{
		ID:        invite.ID,
		Kind:      invite.Kind,
		ServerID:  invite.ServerID,
		ChannelID: invite.ChannelID,
	}

	switch invite.Kind {
	case model.InviteKindServer:
		server, err := s.serverRepo.GetByID(ctx, *invite.ServerID)
		if err != nil {
			return nil, err
		}
		if server == nil {
			return nil, ErrServerNotFound
		}
		preview.ServerName = server.Name

		count, err := s.serverRepo.CountMembers(ctx, server.ID)
		if err != nil {
			return nil, err
		}
		preview.MemberCount = count

		if invite.ChannelID != nil {
			if channel, err := s.channelRepo.GetByID(ctx, *invite.ChannelID); err == nil && channel != nil {
				preview.ChannelName = channel.Name
			}
		}

	case model.InviteKindGroup:
		channel, err := s.channelRepo.GetByID(ctx, *invite.ChannelID)
		if err != nil {
			return nil, err
		}
		if channel == nil || !channel.IsGroup() {
			return nil, ErrGroupNotFound
		}
		preview.ChannelName = channel.Name
		preview.MemberCount = len(channel.RecipientIDs)

	default:
		return nil, ErrInviteNotFound
	}

	return preview, nil
}

// CreateForChannel creates an invite pointing at a channel. A channel that
// belongs to a server yields a server invite; a group channel yields a
// group invite. The actor must be a participant of the channel either way.
func (s *InviteService) CreateForChannel(ctx context.Context, actorID, channelID string) (*model.Invite, error) {
	channel, err := s.channelRepo.GetByID(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel == nil {
		return nil, ErrGroupNotFound
	}

	invite := &model.Invite{CreatorID: actorID}

	switch {
	case channel.ServerID != nil:
		isMember, err := s.serverRepo.IsMember(ctx, *channel.ServerID, actorID)
		if err != nil {
			return nil, err
		}
		if !isMember {
			return nil, ErrNotInChannel
		}
		invite.Kind = model.InviteKindServer
		invite.ServerID = channel.ServerID
		invite.ChannelID = &channel.ID

	case channel.IsGroup():
		if !channel.HasRecipient(actorID) {
			return nil, ErrNotInChannel
		}
		invite.Kind = model.InviteKindGroup
		invite.ChannelID = &channel.ID

	default:
		return nil, ErrNotInChannel
	}

	code, err := generateInviteCode(model.InviteCodeLength)
	if err != nil {
		return nil, err
	}
	invite.ID = "invite:" + code

	if err := s.inviteRepo.Create(ctx, invite); err != nil {
		return nil, err
	}

	return invite, nil
}

// Delete removes an invite. Only the invite's creator may delete it.
func (s *InviteService) Delete(ctx context.Context, actorID, inviteID string) error {
	ref := NewInviteRef(inviteID)
	invite, err := ref.Resolve(ctx, s.inviteRepo)
	if err != nil {
		return err
	}

	if invite.CreatorID != actorID {
		return ErrNotInChannel
	}

	return s.inviteRepo.Delete(ctx, invite.ID)
}

// SweepOrphaned removes invites whose server or channel has been
// deleted. It is called periodically by the background sweeper.
func (s *InviteService) SweepOrphaned(ctx context.Context) (int, error) {
	return s.inviteRepo.DeleteOrphaned(ctx)
}

// generateInviteCode produces a uniformly random code from the invite
// alphabet. Bytes outside the largest multiple of the alphabet size are
// redrawn so no character is favored.
func generateInviteCode(length int) (string, error) {
	// 256 is not a multiple of the alphabet size, so reject bytes at or
	// above the cutoff instead of folding them with a modulo.
	cutoff := byte(256 - 256%len(inviteCodeAlphabet))

	code := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(code) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generating invite code: %w", err)
		}
		for _, b := range buf {
			if b >= cutoff {
				continue
			}
			code = append(code, inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)])
			if len(code) == length {
				break
			}
		}
	}
	return string(code), nil
}
