package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"staybook/internal/domain"
)

// IngestionService pulls the catalog collaborator's feed (hotels, rooms,
// customers) into local storage so availability and pricing can be answered
// without a network hop per request.
type IngestionService struct {
	client  domain.CatalogClient
	catalog domain.CatalogRepository
	cache   domain.Cache
}

func NewIngestionService(client domain.CatalogClient, catalog domain.CatalogRepository, cache domain.Cache) *IngestionService {
	return &IngestionService{client: client, catalog: catalog, cache: cache}
}

// IngestCustomers upserts every customer record from the feed.
func (s *IngestionService) IngestCustomers(ctx context.Context) (int, error) {
	payloads, err := s.client.ListCustomers(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, p := range payloads {
		c := mapCustomer(p)
		if c.ID == "" {
			log.Warn().Any("payload", p).Msg("customer without id skipped")
			continue
		}
		if err := s.catalog.UpsertCustomer(ctx, c); err != nil {
			return n, fmt.Errorf("upsert customer %s: %w", c.ID, err)
		}
		n++
	}
	return n, nil
}

// IngestHotel upserts one hotel and its rooms, then evicts the affected
// catalog cache entries so readers never see a stale snapshot.
func (s *IngestionService) IngestHotel(ctx context.Context, payload map[string]any) error {
	h := mapHotel(payload)
	if h.ID == "" {
		return fmt.Errorf("%w: hotel payload without id", domain.ErrValidation)
	}
	if err := s.catalog.UpsertHotel(ctx, h); err != nil {
		return err
	}

	rooms, err := s.client.ListRooms(ctx, h.ID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	for _, rp := range rooms {
		r := mapRoom(h.ID, rp)
		if r.ID == "" {
			log.Warn().Str("hotel", h.ID).Msg("room without id skipped")
			continue
		}
		if err := s.catalog.UpsertRoom(ctx, r); err != nil {
			return fmt.Errorf("upsert room %s: %w", r.ID, err)
		}
	}

	if s.cache != nil {
		_ = s.cache.Del(ctx, "hotels:all")
		_ = s.cache.Del(ctx, "hotel:"+h.ID)
		_ = s.cache.Del(ctx, "rooms:"+h.ID)
	}
	return nil
}
