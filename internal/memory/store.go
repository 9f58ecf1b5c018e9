// Package memory provides a VecLite-based semantic memory of past briefs,
// generated ads and client feedback.
package memory

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abdul-hamid-achik/veclite"

	"github.com/sichenz/AdNova/internal/adgen"
)

const collectionName = "campaigns"

// Kind tags what a memory record holds.
type Kind string

const (
	KindBrief    Kind = "brief"
	KindAd       Kind = "ad"
	KindFeedback Kind = "feedback"
)

// Config holds configuration for the Store.
type Config struct {
	// Path to the VecLite database file (e.g., "data/memory.veclite").
	Path string

	// ConfigPath is the path to veclite.yaml config file (optional).
	// If empty, searches ./veclite.yaml, ~/.veclite/config.yaml.
	ConfigPath string
}

// Store wraps VecLite for campaign memory.
type Store struct {
	vecdb    *veclite.DB
	coll     *veclite.Collection
	embedder veclite.Embedder
}

// Hit is one search result.
type Hit struct {
	VecLiteID  uint64  `json:"-"`
	Kind       Kind    `json:"kind"`
	RefID      string  `json:"ref_id"`
	BriefID    string  `json:"brief_id,omitempty"`
	Product    string  `json:"product,omitempty"`
	AdType     string  `json:"ad_type,omitempty"`
	Text       string  `json:"text"`
	Similarity float32 `json:"similarity"`
}

// Open creates a Store using veclite.yaml configuration.
func Open(cfg Config) (*Store, error) {
	slog.Debug("opening memory", "path", cfg.Path, "config_path", cfg.ConfigPath)

	vecliteCfg, err := veclite.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load veclite config: %w", err)
	}

	embedder, err := veclite.NewEmbedderFromConfig(vecliteCfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	vecdb, err := veclite.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open veclite db: %w", err)
	}

	coll, err := vecdb.CreateCollection(collectionName,
		veclite.WithDimension(embedder.Dimension()),
		veclite.WithDistanceType(veclite.DistanceCosine),
		veclite.WithHNSW(16, 200),
		veclite.WithTextIndex("kind", "product", "ad_type", "text"),
		veclite.WithEmbedder(embedder),
	)
	if err != nil {
		// Collection might already exist
		coll, err = vecdb.GetCollection(collectionName)
		if err != nil {
			vecdb.Close()
			return nil, fmt.Errorf("get collection: %w", err)
		}
	}

	slog.Info("memory opened", "provider", vecliteCfg.Embedder.Provider, "records", coll.Count())

	return &Store{
		vecdb:    vecdb,
		coll:     coll,
		embedder: embedder,
	}, nil
}

// Close syncs and closes the VecLite database.
func (s *Store) Close() error {
	if s.vecdb == nil {
		return nil
	}
	if err := s.vecdb.Sync(); err != nil {
		slog.Warn("memory sync failed", "error", err)
	}
	return s.vecdb.Close()
}

// IndexBrief stores a campaign brief.
func (s *Store) IndexBrief(ctx context.Context, id string, b adgen.CampaignBrief) (uint64, error) {
	text := BriefText(b)
	return s.insert(text, map[string]any{
		"kind":     string(KindBrief),
		"ref_id":   id,
		"brief_id": id,
		"product":  b.ProductName,
		"text":     text,
	})
}

// IndexAd stores the variations of a generated ad.
func (s *Store) IndexAd(ctx context.Context, id, briefID, product string, adType adgen.AdType, variations []string) (uint64, error) {
	text := AdText(adType, variations)
	if text == "" {
		return 0, nil
	}
	return s.insert(text, map[string]any{
		"kind":     string(KindAd),
		"ref_id":   id,
		"brief_id": briefID,
		"product":  product,
		"ad_type":  string(adType),
		"text":     text,
	})
}

// IndexFeedback stores client feedback on an ad.
func (s *Store) IndexFeedback(ctx context.Context, id, adID, briefID, feedback string) (uint64, error) {
	return s.insert(feedback, map[string]any{
		"kind":     string(KindFeedback),
		"ref_id":   id,
		"ad_id":    adID,
		"brief_id": briefID,
		"text":     feedback,
	})
}

func (s *Store) insert(text string, payload map[string]any) (uint64, error) {
	id, err := s.coll.InsertText(text, payload)
	if err != nil {
		return 0, fmt.Errorf("insert %s: %w", payload["kind"], err)
	}
	return id, nil
}

// Search finds records of any kind similar to the query text.
func (s *Store) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	results, err := s.coll.SearchText(query, veclite.TopK(k))
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return convertResults(results), nil
}

// SimilarCampaigns finds past briefs similar to a product description.
func (s *Store) SimilarCampaigns(ctx context.Context, description string, k int) ([]Hit, error) {
	queryVec, err := s.embedder.Embed(description)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := s.coll.Search(queryVec,
		veclite.TopK(k),
		veclite.WithFilter(veclite.Equal("kind", string(KindBrief))),
	)
	if err != nil {
		return nil, fmt.Errorf("similar campaigns: %w", err)
	}
	return convertResults(results), nil
}

// Count returns the number of records in memory.
func (s *Store) Count() int {
	return s.coll.Count()
}

// Stats returns statistics about the collection.
func (s *Store) Stats() veclite.CollectionStats {
	return s.coll.Stats()
}

// Sync persists any pending changes to disk.
func (s *Store) Sync() error {
	return s.vecdb.Sync()
}

func convertResults(results []veclite.Result) []Hit {
	out := make([]Hit, 0, len(results))
	for _, r := range results {
		h := Hit{
			VecLiteID:  r.Record.ID,
			Similarity: r.Score,
		}
		p := r.Record.Payload
		h.Kind = Kind(str(p, "kind"))
		h.RefID = str(p, "ref_id")
		h.BriefID = str(p, "brief_id")
		h.Product = str(p, "product")
		h.AdType = str(p, "ad_type")
		h.Text = str(p, "text")

		// Fall back to Content field for text
		if h.Text == "" {
			h.Text = r.Record.Content
		}
		out = append(out, h)
	}
	return out
}

func str(payload map[string]any, key string) string {
	if payload == nil {
		return ""
	}
	s, _ := payload[key].(string)
	return s
}

// BriefText is the embedded document for a brief.
func BriefText(b adgen.CampaignBrief) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s\n", b.ProductName, b.Description)
	fmt.Fprintf(&sb, "Audience: %s\n", b.TargetAudience)
	fmt.Fprintf(&sb, "Goals: %s", b.CampaignGoals)
	if len(b.KeySellingPoints) > 0 {
		fmt.Fprintf(&sb, "\nSelling points: %s", strings.Join(b.KeySellingPoints, "; "))
	}
	return sb.String()
}

// AdText is the embedded document for an ad. Failed slots are left out.
func AdText(adType adgen.AdType, variations []string) string {
	var kept []string
	for _, v := range variations {
		if v == adgen.FailedVariation || strings.TrimSpace(v) == "" {
			continue
		}
		kept = append(kept, v)
	}
	if len(kept) == 0 {
		return ""
	}
	return adType.Label() + ":\n" + strings.Join(kept, "\n---\n")
}
