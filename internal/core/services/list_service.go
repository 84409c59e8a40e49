package services

import (
	"context"
	"fmt"
	"time"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/internal/core/ports"
)

// ListService reports the store's assets and their state in the destination
type ListService struct {
	source   ports.AssetSource
	dest     ports.Destination
	manifest ports.ManifestRepository
}

// NewListService creates a new list service
func NewListService(source ports.AssetSource, dest ports.Destination, manifest ports.ManifestRepository) *ListService {
	return &ListService{
		source:   source,
		dest:     dest,
		manifest: manifest,
	}
}

// ListRequest represents a request to list assets
type ListRequest struct {
	Extension string // Suffix filter
	All       bool   // Include assets that don't match
}

// ListedAsset is a store entry joined with its manifest state
type ListedAsset struct {
	domain.Asset
	Matches    bool
	Status     domain.AssetStatus
	Path       string
	UnpackedAt time.Time
}

// ListResponse represents the response from listing assets
type ListResponse struct {
	Assets    []ListedAsset
	Total     int // Entries in the store
	Matching  int
	LastRunAt time.Time
}

// Execute lists the store
func (s *ListService) Execute(ctx context.Context, req ListRequest) (*ListResponse, error) {
	assets, err := s.source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	manifest, err := s.manifest.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	resp := &ListResponse{
		Total:     len(assets),
		LastRunAt: manifest.LastRunAt,
	}

	for _, asset := range assets {
		matches := domain.MatchesExtension(asset.Name, req.Extension)
		if matches {
			resp.Matching++
		} else if !req.All {
			continue
		}

		listed := ListedAsset{
			Asset:   asset,
			Matches: matches,
			Path:    s.dest.Path(asset.Name),
		}
		if rec, ok := manifest.Assets[asset.Name]; ok {
			listed.UnpackedAt = rec.UnpackedAt
		}
		listed.Status = s.status(asset.Name, matches, manifest)

		resp.Assets = append(resp.Assets, listed)
	}

	return resp, nil
}

func (s *ListService) status(name string, matches bool, manifest *domain.Manifest) domain.AssetStatus {
	if !matches {
		return domain.StatusIgnored
	}

	rec, ok := manifest.Assets[name]
	if !ok {
		return domain.StatusPending
	}

	current, err := s.dest.Checksum(name)
	if err != nil || current != rec.Checksum {
		return domain.StatusModified
	}
	return domain.StatusUnpacked
}
