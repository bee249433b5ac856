package accessgrant

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/community/backend/internal/domain/accessgrant"
	"github.com/community/backend/internal/domain/shared"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// verifyCacheTTL is short so a cancel or expiry shows at the gate within
// seconds while repeated scans of the same code stay cheap.
const verifyCacheTTL = 30 * time.Second

// VerificationResponse is what the gate sees for a valid code. Invalid,
// expired and cancelled codes never reach this shape; they all surface as
// not found so a scanner cannot enumerate which codes once existed.
type VerificationResponse struct {
	EntityType       string    `json:"entity_type"`
	GrantID          string    `json:"grant_id"`
	ResidentName     string    `json:"resident_name"`
	Detail           string    `json:"detail"`
	WindowEnd        time.Time `json:"window_end"`
	RemainingSeconds int64     `json:"remaining_seconds"`
}

// VerifyService is the guard-facing code lookup across all grant entities
type VerifyService struct {
	cabRepo      accessgrant.CabPreapprovalRepository
	deliveryRepo accessgrant.DeliveryPassRepository
	guestRepo    accessgrant.GuestInviteRepository
	childRepo    accessgrant.ChildExitPermissionRepository
	cache        *redis.Client
	logger       *zap.Logger
}

// NewVerifyService creates a new VerifyService. The cache client may be nil;
// verification then always hits the store.
func NewVerifyService(
	cabRepo accessgrant.CabPreapprovalRepository,
	deliveryRepo accessgrant.DeliveryPassRepository,
	guestRepo accessgrant.GuestInviteRepository,
	childRepo accessgrant.ChildExitPermissionRepository,
	cache *redis.Client,
	logger *zap.Logger,
) *VerifyService {
	return &VerifyService{
		cabRepo:      cabRepo,
		deliveryRepo: deliveryRepo,
		guestRepo:    guestRepo,
		childRepo:    childRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Verify looks up an access code across all grant entities. Any miss,
// whether the code never existed, was cancelled or has expired, returns
// shared.ErrNotFound.
func (s *VerifyService) Verify(ctx context.Context, code string) (*VerificationResponse, error) {
	if code == "" {
		return nil, shared.ErrNotFound
	}

	if resp := s.cacheGet(ctx, code); resp != nil {
		return resp, nil
	}

	now := time.Now()

	if c, err := s.cabRepo.FindActiveByCode(ctx, code); err == nil {
		if !c.IsVerifiable(now) {
			return nil, shared.ErrNotFound
		}
		return s.finish(ctx, code, &VerificationResponse{
			EntityType:       accessgrant.AggregateCabPreapproval,
			GrantID:          c.ID.String(),
			ResidentName:     c.ResidentName,
			Detail:           c.CabCompany + " " + c.VehicleNumber,
			WindowEnd:        c.WindowEnd,
			RemainingSeconds: int64(c.Window().Remaining(now).Seconds()),
		}), nil
	} else if !isMiss(err) {
		return nil, err
	}

	if p, err := s.deliveryRepo.FindActiveByCode(ctx, code); err == nil {
		if !p.IsVerifiable(now) {
			return nil, shared.ErrNotFound
		}
		return s.finish(ctx, code, &VerificationResponse{
			EntityType:       accessgrant.AggregateDeliveryPass,
			GrantID:          p.ID.String(),
			ResidentName:     p.ResidentName,
			Detail:           p.Courier,
			WindowEnd:        p.WindowEnd,
			RemainingSeconds: int64(p.Window().Remaining(now).Seconds()),
		}), nil
	} else if !isMiss(err) {
		return nil, err
	}

	if g, err := s.guestRepo.FindActiveByCode(ctx, code); err == nil {
		if !g.IsVerifiable(now) {
			return nil, shared.ErrNotFound
		}
		return s.finish(ctx, code, &VerificationResponse{
			EntityType:       accessgrant.AggregateGuestInvite,
			GrantID:          g.ID.String(),
			ResidentName:     g.HostName,
			Detail:           g.GuestName,
			WindowEnd:        g.WindowEnd,
			RemainingSeconds: int64(g.Window().Remaining(now).Seconds()),
		}), nil
	} else if !isMiss(err) {
		return nil, err
	}

	if p, err := s.childRepo.FindActiveByCode(ctx, code); err == nil {
		if !p.IsVerifiable(now) {
			return nil, shared.ErrNotFound
		}
		return s.finish(ctx, code, &VerificationResponse{
			EntityType:       accessgrant.AggregateChildExitPermission,
			GrantID:          p.ID.String(),
			ResidentName:     p.ParentName,
			Detail:           p.ChildName,
			WindowEnd:        p.ValidUntil,
			RemainingSeconds: int64(p.Window().Remaining(now).Seconds()),
		}), nil
	} else if !isMiss(err) {
		return nil, err
	}

	return nil, shared.ErrNotFound
}

func isMiss(err error) bool {
	return errors.Is(err, shared.ErrNotFound)
}

func (s *VerifyService) finish(ctx context.Context, code string, resp *VerificationResponse) *VerificationResponse {
	s.cacheSet(ctx, code, resp)
	return resp
}

func (s *VerifyService) cacheKey(code string) string {
	return "verify:" + code
}

func (s *VerifyService) cacheGet(ctx context.Context, code string) *VerificationResponse {
	if s.cache == nil {
		return nil
	}
	raw, err := s.cache.Get(ctx, s.cacheKey(code)).Bytes()
	if err != nil {
		return nil
	}
	var resp VerificationResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil
	}
	return &resp
}

func (s *VerifyService) cacheSet(ctx context.Context, code string, resp *VerificationResponse) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(code), raw, verifyCacheTTL).Err(); err != nil {
		s.logger.Debug("Verify cache write failed", zap.Error(err))
	}
}
