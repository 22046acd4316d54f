package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/klauspost/compress/zstd"

	appctx "github.com/nicole276/Api-Stockbar/internal/core/context"
	"github.com/nicole276/Api-Stockbar/pkg/logger"
)

// Audit actions recorded for entity changes.
const (
	AuditActionCreate     = "create"
	AuditActionUpdate     = "update"
	AuditActionDelete     = "delete"
	AuditActionVoid       = "void"
	AuditActionReactivate = "reactivate"
	AuditActionComplete   = "complete"
)

// compressThreshold is the payload size above which change sets are
// stored zstd-compressed instead of as plain JSONB.
const compressThreshold = 1024

// AuditRecorder writes an audit trail of entity changes. Small change
// sets are stored as plain JSON; larger ones (sales with many lines)
// are zstd-compressed.
type AuditRecorder struct {
	txManager *TxManager
	encoder   *zstd.Encoder
	decoder   *zstd.Decoder
	builder   sq.StatementBuilderType
}

// NewAuditRecorder creates an audit recorder bound to the transaction
// manager. Audit rows are written in the same transaction as the
// change they describe.
func NewAuditRecorder(txManager *TxManager) (*AuditRecorder, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &AuditRecorder{
		txManager: txManager,
		encoder:   encoder,
		decoder:   decoder,
		builder:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

// Record writes one audit entry. The change set is marshalled to JSON;
// a nil changes value records the action without a payload.
func (r *AuditRecorder) Record(ctx context.Context, entityType string, entityID int64, action string, changes any) error {
	var (
		plain      []byte
		compressed []byte
		algo       = "none"
	)
	if changes != nil {
		raw, err := json.Marshal(changes)
		if err != nil {
			return fmt.Errorf("marshal audit changes: %w", err)
		}
		if len(raw) > compressThreshold {
			compressed = r.encoder.EncodeAll(raw, nil)
			algo = "zstd"
		} else {
			plain = raw
		}
	}

	var userID *int64
	if user := appctx.GetUser(ctx); user != nil {
		userID = &user.UserID
	}

	query := r.builder.
		Insert("audit_log").
		Columns("entity_type", "entity_id", "action", "user_id",
			"changes", "changes_compressed", "compression_algo", "created_at").
		Values(entityType, entityID, action, userID,
			plain, compressed, algo, time.Now().UTC())

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build audit query: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// RecordQuiet records an audit entry and only logs failures instead of
// returning them. Inside an ambient transaction a failed audit INSERT
// still poisons the transaction, so the surrounding operation aborts at
// commit; the quiet guarantee fully holds only for errors raised before
// the INSERT runs (marshalling, query building) or when called outside
// a transaction. Callers that audit inside their business transaction
// get atomicity: either both the change and its audit row land, or
// neither does.
func (r *AuditRecorder) RecordQuiet(ctx context.Context, entityType string, entityID int64, action string, changes any) {
	if err := r.Record(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit record failed",
			"entity_type", entityType,
			"entity_id", entityID,
			"action", action,
			"error", err,
		)
	}
}

// DecompressChanges restores the original JSON change set from a stored
// audit row.
func (r *AuditRecorder) DecompressChanges(plain, compressed []byte, algo string) ([]byte, error) {
	switch algo {
	case "zstd":
		return r.decoder.DecodeAll(compressed, nil)
	default:
		return plain, nil
	}
}
