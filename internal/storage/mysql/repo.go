package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"offer_post/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func strPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

// valJSON encodes v, storing nil slices as empty arrays.
func valJSON[T any](v []T) (string, error) {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

type scanner interface {
	Scan(dest ...any) error
}

func (r *Repo) InsertPost(ctx context.Context, p domain.PostRecord) error {
	js, err := encodeLists(p)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertPostSQL,
		p.ID,
		p.SourceURL,
		p.Options.UseEmojis,
		string(p.Options.Style),
		p.GeneratedPost,
		p.OriginalPost,
		string(p.Outcome),
		p.Offer.Name,
		valStr(p.Offer.Category),
		p.Offer.Destination,
		valStr(p.Offer.Price),
		valStr(p.Offer.Duration),
		valStr(p.Offer.Description),
		valStr(p.Offer.ImageURL),
		js[0], js[1], js[2], js[3],
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *Repo) GetPost(ctx context.Context, id string) (domain.PostRecord, error) {
	return scanPost(r.db.QueryRowContext(ctx, getPostSQL, id))
}

func (r *Repo) UpdatePost(ctx context.Context, id string, mutate func(*domain.PostRecord) error) (domain.PostRecord, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.PostRecord{}, err
	}
	defer func() { _ = tx.Rollback() }()

	p, err := scanPost(tx.QueryRowContext(ctx, getPostForUpdateSQL, id))
	if err != nil {
		return domain.PostRecord{}, err
	}
	if err := mutate(&p); err != nil {
		return domain.PostRecord{}, err
	}
	js, err := encodeLists(p)
	if err != nil {
		return domain.PostRecord{}, err
	}
	if _, err := tx.ExecContext(ctx, updatePostSQL,
		p.GeneratedPost,
		string(p.Outcome),
		p.Offer.Name,
		valStr(p.Offer.Category),
		p.Offer.Destination,
		valStr(p.Offer.Price),
		valStr(p.Offer.Duration),
		valStr(p.Offer.Description),
		valStr(p.Offer.ImageURL),
		js[0], js[1], js[2], js[3],
		p.UpdatedAt,
		id,
	); err != nil {
		return domain.PostRecord{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.PostRecord{}, err
	}
	return p, nil
}

// encodeLists returns features, feature_icons, amenities and custom_sections as JSON.
func encodeLists(p domain.PostRecord) ([4]string, error) {
	var out [4]string
	var err error
	if out[0], err = valJSON(p.Offer.Features); err != nil {
		return out, err
	}
	if out[1], err = valJSON(p.Offer.FeatureIcons); err != nil {
		return out, err
	}
	if out[2], err = valJSON(p.Offer.Amenities); err != nil {
		return out, err
	}
	out[3], err = valJSON(p.CustomSections)
	return out, err
}

func scanPost(row scanner) (domain.PostRecord, error) {
	var (
		p                                    domain.PostRecord
		style, outcome                       string
		category, price, duration, desc, img sql.NullString
		features, icons, amenities, sections []byte
	)
	err := row.Scan(
		&p.ID,
		&p.SourceURL,
		&p.Options.UseEmojis,
		&style,
		&p.GeneratedPost,
		&p.OriginalPost,
		&outcome,
		&p.Offer.Name,
		&category,
		&p.Offer.Destination,
		&price,
		&duration,
		&desc,
		&img,
		&features,
		&icons,
		&amenities,
		&sections,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.PostRecord{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.PostRecord{}, err
	}
	p.Options.Style = domain.Style(style)
	p.Outcome = domain.Outcome(outcome)
	p.Offer.Category = strPtr(category)
	p.Offer.Price = strPtr(price)
	p.Offer.Duration = strPtr(duration)
	p.Offer.Description = strPtr(desc)
	p.Offer.ImageURL = strPtr(img)

	for _, f := range []struct {
		col string
		raw []byte
		dst any
	}{
		{"features", features, &p.Offer.Features},
		{"feature_icons", icons, &p.Offer.FeatureIcons},
		{"amenities", amenities, &p.Offer.Amenities},
		{"custom_sections", sections, &p.CustomSections},
	} {
		if len(f.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(f.raw, f.dst); err != nil {
			return domain.PostRecord{}, fmt.Errorf("decode %s: %w", f.col, err)
		}
	}
	return p, nil
}
