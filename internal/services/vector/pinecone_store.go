package vector

import (
	"context"
	"fmt"

	"github.com/pinecone-io/go-pinecone/v4/pinecone"
	"google.golang.org/protobuf/types/known/structpb"
)

// PineconeStore is a Store backed by a hosted Pinecone index.
type PineconeStore struct {
	config *Config
	index  *pinecone.IndexConnection
	retry  *RetryService
	logger Logger
}

func NewPineconeStore(config *Config, logger Logger) (*PineconeStore, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigError(err.Error())
	}

	pc, err := pinecone.NewClient(pinecone.NewClientParams{ApiKey: config.APIKey})
	if err != nil {
		return nil, NewOperationError("connect", "failed to create pinecone client", err)
	}

	idx, err := pc.Index(pinecone.NewIndexConnParams{
		Host:      config.IndexHost,
		Namespace: config.Namespace,
	})
	if err != nil {
		return nil, NewOperationError("connect", "failed to open index connection", err)
	}

	logger.Info("Pinecone index connection ready", "host", config.IndexHost, "namespace", config.Namespace)

	return &PineconeStore{
		config: config,
		index:  idx,
		retry:  NewRetryService(config, logger),
		logger: logger,
	}, nil
}

func (s *PineconeStore) Name() string { return "pinecone" }

func (s *PineconeStore) Upsert(ctx context.Context, records []Record) error {
	vectors := make([]*pinecone.Vector, 0, len(records))
	for _, r := range records {
		meta, err := toMetadata(r.Metadata)
		if err != nil {
			return NewOperationError("upsert", "invalid metadata for "+r.ID, err)
		}
		values := r.Values
		vectors = append(vectors, &pinecone.Vector{Id: r.ID, Values: &values, Metadata: meta})
	}

	for start := 0; start < len(vectors); start += s.config.BatchSize {
		end := start + s.config.BatchSize
		if end > len(vectors) {
			end = len(vectors)
		}
		batch := vectors[start:end]

		err := s.retry.RetryWithTimeout(ctx, func(ctx context.Context) error {
			_, err := s.index.UpsertVectors(ctx, batch)
			return err
		})
		if err != nil {
			return NewOperationError("upsert", fmt.Sprintf("batch %d-%d failed", start, end), err)
		}
		s.logger.Debug("upserted vectors", "count", len(batch))
	}
	return nil
}

func (s *PineconeStore) Query(ctx context.Context, vec []float32, topK int) ([]Match, error) {
	var res *pinecone.QueryVectorsResponse
	err := s.retry.RetryWithTimeout(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.index.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
			Vector:          vec,
			TopK:            uint32(topK),
			IncludeMetadata: true,
		})
		return err
	})
	if err != nil {
		return nil, NewOperationError("query", "query by vector failed", err)
	}

	matches := make([]Match, 0, len(res.Matches))
	for _, m := range res.Matches {
		if m == nil || m.Vector == nil {
			continue
		}
		matches = append(matches, Match{
			ID:       m.Vector.Id,
			Score:    m.Score,
			Metadata: fromMetadata(m.Vector.Metadata),
		})
	}
	return matches, nil
}

func toMetadata(meta map[string]string) (*structpb.Struct, error) {
	fields := make(map[string]interface{}, len(meta))
	for k, v := range meta {
		fields[k] = v
	}
	return structpb.NewStruct(fields)
}

func fromMetadata(meta *structpb.Struct) map[string]string {
	out := make(map[string]string)
	if meta == nil {
		return out
	}
	for k, v := range meta.GetFields() {
		if s, ok := v.GetKind().(*structpb.Value_StringValue); ok {
			out[k] = s.StringValue
			continue
		}
		out[k] = v.String()
	}
	return out
}
