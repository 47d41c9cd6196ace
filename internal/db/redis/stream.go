package redis

import (
	"context"
	"fmt"

	"github.com/aandreyev/kb-search-api/internal/db"
)

// XAdd appends an entry to a stream with an auto-generated ID.
func (s *Store) XAdd(ctx context.Context, stream string, fields map[string]string) error {
	if len(fields) == 0 {
		return fmt.Errorf("fields are required")
	}

	cmd := s.b().Xadd().Key(stream).Id("*").FieldValue()
	for k, v := range fields {
		cmd = cmd.FieldValue(k, v)
	}

	if err := s.do(ctx, cmd.Build()).Error(); err != nil {
		return &db.Error{Op: db.OpXAdd, Err: err}
	}
	return nil
}
