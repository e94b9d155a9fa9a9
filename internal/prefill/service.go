// internal/prefill/service.go
package prefill

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"benefits-wizard/internal/common/config"
	"benefits-wizard/internal/common/database"
	"benefits-wizard/internal/common/errors"
	"benefits-wizard/internal/common/logger"
	"benefits-wizard/internal/common/observability"
	"benefits-wizard/internal/forms/field"
)

// File is one uploaded document: an opaque blob plus its original name.
type File struct {
	Name    string
	Content []byte
}

// Service is the document scanner. Each file is scanned independently; one
// bad file never sinks the batch. Results are cached in redis by content
// digest, so the simulated OCR latency is paid once per distinct document.
type Service struct {
	cfg   config.PrefillConfig
	cache *database.RedisClient
	log   logger.Logger
	obs   *observability.Observability
}

// NewService builds the scanner. cache may be nil when redis is disabled;
// every scan then pays the full latency.
func NewService(cfg config.PrefillConfig, cache *database.RedisClient, log logger.Logger, obs *observability.Observability) *Service {
	return &Service{cfg: cfg, cache: cache, log: log, obs: obs}
}

// Scan extracts a sparse applicant record from a batch of files. The whole
// batch runs under the configured deadline; per-file failures are logged and
// skipped, and the merged record of whatever succeeded is returned. Later
// files win when two documents yield the same key. A batch where every file
// failed returns an empty record and a nil error: the scanner never blocks
// the form.
func (s *Service) Scan(ctx context.Context, files []File) (Record, error) {
	if !s.cfg.Enabled || len(files) == 0 {
		return Record{}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.TimeoutMS)*time.Millisecond)
	defer cancel()

	var merged Record
	for _, f := range files {
		rec, err := s.scanOne(ctx, f)
		if err != nil {
			s.obs.RecordPrefillRequest(ctx, "error")
			s.log.WithError(errors.NewPrefillFailedError(err)).Warn("document scan failed", map[string]interface{}{
				"file": f.Name,
			})
			continue
		}
		s.obs.RecordPrefillRequest(ctx, "ok")
		merged = merged.merge(rec)
	}
	return merged, nil
}

func (s *Service) scanOne(ctx context.Context, f File) (Record, error) {
	digest := fileDigest(f)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey(digest)); err == nil {
			rec, perr := ParseRecord([]byte(cached))
			if perr == nil {
				s.log.Debug("prefill cache hit", map[string]interface{}{"file": f.Name})
				return rec, nil
			}
			// A corrupt cache entry falls through to a fresh scan.
			s.log.WithError(perr).Warn("discarding corrupt prefill cache entry", map[string]interface{}{
				"key": cacheKey(digest),
			})
		} else if err != redis.Nil {
			s.log.WithError(errors.NewCacheUnavailableError(err)).Warn("prefill cache unavailable", nil)
		}
	}

	// Simulated OCR latency, cancellable by the batch deadline.
	select {
	case <-time.After(time.Duration(s.cfg.LatencyMS) * time.Millisecond):
	case <-ctx.Done():
		return Record{}, ctx.Err()
	}

	rec := mockExtract(f, digest)

	if s.cache != nil && !rec.IsEmpty() {
		payload, err := json.Marshal(rec)
		if err == nil {
			ttl := time.Duration(s.cfg.CacheTTLMins) * time.Minute
			if err := s.cache.Set(ctx, cacheKey(digest), string(payload), ttl); err != nil {
				s.log.WithError(errors.NewCacheUnavailableError(err)).Warn("prefill cache write failed", nil)
			}
		}
	}
	return rec, nil
}

func cacheKey(digest string) string {
	return "prefill:doc:" + digest
}

func fileDigest(f File) string {
	sum := sha256.Sum256(f.Content)
	return hex.EncodeToString(sum[:])
}

// mockExtract stands in for a real OCR backend. It recognizes documents by
// filename hint and fabricates stable values from the content digest, so the
// same file always scans to the same record.
func mockExtract(f File, digest string) Record {
	name := strings.ToLower(f.Name)
	short := digest[:6]

	rec := Record{}
	switch {
	case strings.Contains(name, "license") || strings.Contains(name, "id"):
		rec.FirstName = ptr("Jordan")
		rec.LastName = ptr("Sample-" + short)
		rec.DateOfBirth = ptr("1985-03-15")
		rec.StreetAddress = ptr(fmt.Sprintf("%d Mock Ave", 100+int(digest[0])))
		rec.City = ptr("Richmond")
		rec.Zip = ptr("23220")
	case strings.Contains(name, "ssn") || strings.Contains(name, "card"):
		rec.SSN = ptr(field.NormalizeSSN(digitsFromDigest(digest, 9)))
	case strings.Contains(name, "bill") || strings.Contains(name, "utility"):
		rec.StreetAddress = ptr(fmt.Sprintf("%d Mock Ave", 100+int(digest[0])))
		rec.City = ptr("Richmond")
		rec.Zip = ptr("23220")
	default:
		// Unrecognized document type; nothing extracted.
	}
	return rec
}

func digitsFromDigest(digest string, n int) string {
	var b strings.Builder
	for i := 0; b.Len() < n; i++ {
		b.WriteByte('0' + digest[i%len(digest)]%10)
	}
	return b.String()
}

func ptr(s string) *string {
	return &s
}
