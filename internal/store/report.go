package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const reportsTable = "assessment_reports"

var reportColumns = []string{"id", "sequence", "timestamp", "session_id", "bank_id", "scores", "top", "insight"}

// reportRepo implements ReportRepo on the ent SQL builder and the global
// sequence counter.
type reportRepo struct {
	drv *entsql.Driver
	seq *sequence
}

func (r *reportRepo) Save(ctx context.Context, data ReportData) (int, error) {
	seqNum, err := r.seq.next(ctx)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}

	scores, err := json.Marshal(nonNil(data.Scores))
	if err != nil {
		return 0, fmt.Errorf("marshal scores: %w", err)
	}
	top, err := json.Marshal(nonNil(data.Top))
	if err != nil {
		return 0, fmt.Errorf("marshal top: %w", err)
	}

	ts := data.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder().Insert(reportsTable).
		Columns("sequence", "timestamp", "session_id", "bank_id", "scores", "top", "insight").
		Values(seqNum, ts.UnixMilli(), data.SessionID, data.BankID, string(scores), string(top), data.Insight).
		Query()

	_, id, err := execResult(ctx, r.drv, query, args)
	if err != nil {
		return 0, fmt.Errorf("save report: %w", err)
	}
	return int(id), nil
}

func (r *reportRepo) Get(ctx context.Context, id int) (*ReportRecord, error) {
	b := builder()
	sel := b.Select(reportColumns...).
		From(b.Table(reportsTable)).
		Where(entsql.EQ("id", id))

	var found *ReportRecord
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		rec, err := scanReport(rows)
		if err != nil {
			return err
		}
		found = rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get report %d: %w", id, err)
	}
	return found, nil
}

func (r *reportRepo) List(ctx context.Context, opts QueryOpts) ([]ReportRecord, error) {
	b := builder()
	sel := applyOpts(b.Select(reportColumns...).From(b.Table(reportsTable)), opts)

	var records []ReportRecord
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		rec, err := scanReport(rows)
		if err != nil {
			return err
		}
		records = append(records, *rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return records, nil
}

func (r *reportRepo) Delete(ctx context.Context, id int) (bool, error) {
	query, args := builder().Delete(reportsTable).Where(entsql.EQ("id", id)).Query()
	n, _, err := execResult(ctx, r.drv, query, args)
	if err != nil {
		return false, fmt.Errorf("delete report %d: %w", id, err)
	}
	return n > 0, nil
}

func (r *reportRepo) Count(ctx context.Context) (int, error) {
	b := builder()
	sel := b.Select(entsql.Count("*")).From(b.Table(reportsTable))

	var n int
	err := queryRows(ctx, r.drv, sel, func(rows *entsql.Rows) error {
		return rows.Scan(&n)
	})
	if err != nil {
		return 0, fmt.Errorf("count reports: %w", err)
	}
	return n, nil
}

func scanReport(rows *entsql.Rows) (*ReportRecord, error) {
	var (
		rec         ReportRecord
		ts          int64
		scores, top string
	)
	if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.SessionID, &rec.BankID, &scores, &top, &rec.Insight); err != nil {
		return nil, err
	}
	rec.Timestamp = time.UnixMilli(ts)
	if err := json.Unmarshal([]byte(scores), &rec.Scores); err != nil {
		return nil, fmt.Errorf("decode scores: %w", err)
	}
	if err := json.Unmarshal([]byte(top), &rec.Top); err != nil {
		return nil, fmt.Errorf("decode top: %w", err)
	}
	return &rec, nil
}

func nonNil(s []CategoryScoreData) []CategoryScoreData {
	if s == nil {
		return []CategoryScoreData{}
	}
	return s
}
