package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kamal-hamza/unpack-cli/internal/core/domain"
	"github.com/kamal-hamza/unpack-cli/internal/core/ports"
	"github.com/kamal-hamza/unpack-cli/pkg/checksum"
	"github.com/kamal-hamza/unpack-cli/pkg/logging"
)

// DefaultBufferSize is the copy buffer used when none is configured
const DefaultBufferSize = 1024

// UnpackService copies matching assets from the store into the destination
type UnpackService struct {
	source     ports.AssetSource
	dest       ports.Destination
	manifest   ports.ManifestRepository
	logger     *zap.Logger
	bufferSize int

	now      func() time.Time
	newRunID func() string
}

// NewUnpackService creates a new unpack service.
// A nil logger discards output; bufferSize <= 0 uses DefaultBufferSize.
func NewUnpackService(source ports.AssetSource, dest ports.Destination, manifest ports.ManifestRepository, logger *zap.Logger, bufferSize int) *UnpackService {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	return &UnpackService{
		source:     source,
		dest:       dest,
		manifest:   manifest,
		logger:     logging.OrNop(logger),
		bufferSize: bufferSize,
		now:        time.Now,
		newRunID:   func() string { return uuid.NewString() },
	}
}

// UnpackRequest represents a request to unpack assets
type UnpackRequest struct {
	Extension string   // Suffix filter; empty matches every asset
	Force     bool     // Rewrite assets even when the destination copy is identical
	Only      []string // Restrict the run to these names (optional)
}

// UnpackResponse represents the outcome of an unpack run
type UnpackResponse struct {
	RunID    string
	Source   string
	Results  []domain.AssetResult // One per matching asset, in listing order
	Ignored  int                  // Assets that did not match
	ListErr  error                // Set when the store could not be listed
	Skipped  bool                 // Set when a first-run-only request found a previous run
	Duration time.Duration
}

// Written returns the assets copied during this run
func (r *UnpackResponse) Written() []domain.AssetResult {
	return r.filter(domain.OutcomeWritten)
}

// Unchanged returns the assets whose destination copy was already identical
func (r *UnpackResponse) Unchanged() []domain.AssetResult {
	return r.filter(domain.OutcomeUnchanged)
}

// Failed returns the assets that could not be copied
func (r *UnpackResponse) Failed() []domain.AssetResult {
	return r.filter(domain.OutcomeFailed)
}

func (r *UnpackResponse) filter(outcome domain.Outcome) []domain.AssetResult {
	var out []domain.AssetResult
	for _, res := range r.Results {
		if res.Outcome == outcome {
			out = append(out, res)
		}
	}
	return out
}

// Execute unpacks every asset whose name ends with req.Extension.
//
// Listing and per-asset failures are logged and reported in the response,
// never returned. The only error is ctx's, checked between assets.
func (s *UnpackService) Execute(ctx context.Context, req UnpackRequest) (*UnpackResponse, error) {
	start := s.now()
	resp := &UnpackResponse{
		RunID:  s.newRunID(),
		Source: s.source.Describe(),
	}
	log := s.logger.With(zap.String("run_id", resp.RunID), zap.String("source", resp.Source))
	defer func() { resp.Duration = s.now().Sub(start) }()

	log.Debug("Unpacking", zap.String("extension", req.Extension))

	assets, err := s.source.List(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return resp, ctxErr
		}
		log.Error("Failed to get asset file list", zap.Error(err))
		resp.ListErr = err
		return resp, nil
	}
	if len(assets) == 0 {
		log.Error("No assets found")
		return resp, nil
	}

	var only map[string]bool
	if len(req.Only) > 0 {
		only = make(map[string]bool, len(req.Only))
		for _, name := range req.Only {
			only[name] = true
		}
	}

	manifest := s.loadManifest(log)

	var (
		ensured   bool
		ensureErr error
	)
	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return resp, err
		}

		if !domain.MatchesExtension(asset.Name, req.Extension) || (only != nil && !only[asset.Name]) {
			resp.Ignored++
			continue
		}

		if domain.IsReservedName(asset.Name) {
			err := fmt.Errorf("%w: %s would overwrite the manifest", domain.ErrReservedName, asset.Name)
			resp.Results = append(resp.Results, s.failed(log, domain.AssetResult{Name: asset.Name, Path: s.dest.Path(asset.Name)}, err))
			continue
		}

		// The destination is only created once something needs to go into it
		if !ensured {
			ensured = true
			if ensureErr = s.dest.Ensure(); ensureErr != nil {
				log.Error("Failed to prepare destination", zap.Error(ensureErr))
			}
		}

		log.Debug("Asset", zap.String("asset", asset.Name))

		var result domain.AssetResult
		if ensureErr != nil {
			result = s.failed(log, domain.AssetResult{Name: asset.Name, Path: s.dest.Path(asset.Name)}, ensureErr)
		} else {
			result = s.unpackAsset(ctx, log, asset.Name, req.Force, resp.RunID, manifest)
		}
		resp.Results = append(resp.Results, result)
	}

	// Only a run that left at least one asset in place counts as a first run
	if len(resp.Written())+len(resp.Unchanged()) > 0 {
		if err := s.manifest.MarkRun(ctx, resp.RunID, s.now()); err != nil {
			log.Warn("Failed to update manifest", zap.Error(err))
		}
	}

	log.Info("Unpack finished",
		zap.Int("written", len(resp.Written())),
		zap.Int("unchanged", len(resp.Unchanged())),
		zap.Int("failed", len(resp.Failed())),
		zap.Int("ignored", resp.Ignored),
	)

	return resp, nil
}

// FirstRun unpacks only if no previous run has completed.
// A manifest that can't be read counts as no previous run.
func (s *UnpackService) FirstRun(ctx context.Context, req UnpackRequest) (*UnpackResponse, error) {
	if m, err := s.manifest.Load(); err == nil && m.HasRun() {
		s.logger.Debug("Assets already unpacked",
			zap.String("last_run_id", m.LastRunID),
			zap.Time("last_run_at", m.LastRunAt),
		)
		return &UnpackResponse{
			RunID:   m.LastRunID,
			Source:  s.source.Describe(),
			Skipped: true,
		}, nil
	}
	return s.Execute(ctx, req)
}

func (s *UnpackService) loadManifest(log *zap.Logger) *domain.Manifest {
	m, err := s.manifest.Load()
	if err != nil {
		log.Warn("Failed to load manifest, continuing without it", zap.Error(err))
		return domain.NewManifest()
	}
	return m
}

// unpackAsset streams one asset into the destination. The destination file
// is replaced only after the whole asset has been copied.
func (s *UnpackService) unpackAsset(ctx context.Context, log *zap.Logger, name string, force bool, runID string, manifest *domain.Manifest) domain.AssetResult {
	result := domain.AssetResult{Name: name, Path: s.dest.Path(name)}

	in, err := s.source.Open(ctx, name)
	if err != nil {
		return s.failed(log, result, err)
	}
	defer s.closeStream(log, name, in)

	out, err := s.dest.Create(name)
	if err != nil {
		return s.failed(log, result, err)
	}

	hasher := checksum.New()
	buf := make([]byte, s.bufferSize)
	// Hide WriterTo so the copy goes through buf
	n, err := io.CopyBuffer(io.MultiWriter(out, hasher), struct{ io.Reader }{in}, buf)
	if err != nil {
		s.abort(log, name, out)
		return s.failed(log, result, fmt.Errorf("copy: %w", err))
	}
	result.Bytes = n
	sum := checksum.Format(hasher.Sum64())

	if !force {
		if current, err := s.dest.Checksum(name); err == nil && current == sum {
			s.abort(log, name, out)
			result.Outcome = domain.OutcomeUnchanged
			log.Debug("unchanged", zap.String("asset", name), zap.String("path", result.Path))
			if rec, ok := manifest.Assets[name]; !ok || rec.Checksum != sum {
				s.record(ctx, log, name, sum, n, runID)
			}
			return result
		}
	}

	if err := out.Commit(); err != nil {
		return s.failed(log, result, err)
	}

	result.Outcome = domain.OutcomeWritten
	log.Info("written",
		zap.String("asset", name),
		zap.String("path", result.Path),
		zap.Int64("bytes", n),
	)
	s.record(ctx, log, name, sum, n, runID)

	return result
}

func (s *UnpackService) record(ctx context.Context, log *zap.Logger, name, sum string, size int64, runID string) {
	err := s.manifest.Record(ctx, domain.UnpackedAsset{
		Name:       name,
		Checksum:   sum,
		Size:       size,
		UnpackedAt: s.now(),
		RunID:      runID,
	})
	if err != nil {
		log.Warn("Failed to record asset in manifest", zap.String("asset", name), zap.Error(err))
	}
}

func (s *UnpackService) failed(log *zap.Logger, result domain.AssetResult, err error) domain.AssetResult {
	log.Error("Failed to copy asset file", zap.String("asset", result.Name), zap.Error(err))
	result.Outcome = domain.OutcomeFailed
	result.Err = err
	result.Bytes = 0
	return result
}

func (s *UnpackService) abort(log *zap.Logger, name string, out ports.PendingFile) {
	if err := out.Abort(); err != nil {
		log.Warn("Error discarding partial file", zap.String("asset", name), zap.Error(err))
	}
}

func (s *UnpackService) closeStream(log *zap.Logger, name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn("Error closing stream", zap.String("asset", name), zap.Error(err))
	}
}
