// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package listingsrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/adapter/db/postgres"
	"github.com/momeni/carhub/pkg/core/cerr"
	"github.com/momeni/carhub/pkg/core/model"
	"gorm.io/gorm"
)

// gListing is the persisted form of model.Listing. The images and
// features lists are kept in JSON-encoded text columns.
type gListing struct {
	ID     uuid.UUID  `gorm:"primaryKey;type:uuid"`
	UserID *uuid.UUID `gorm:"type:uuid"`

	Make         string
	Model        string
	Year         int
	Price        float64
	Mileage      int
	FuelType     string
	Transmission string

	BodyType   *string
	Color      *string
	EngineSize *string
	Doors      *int
	Seats      *int

	ConditionRating int
	Description     string

	Image    *string
	Images   *string
	Features *string

	Status    string
	Views     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (gl *gListing) TableName() string {
	return "listings"
}

func (gl *gListing) ToModel() (*model.Listing, error) {
	images, err := decodeList(gl.Images)
	if err != nil {
		return nil, fmt.Errorf("images of %s: %w", gl.ID, err)
	}
	features, err := decodeList(gl.Features)
	if err != nil {
		return nil, fmt.Errorf("features of %s: %w", gl.ID, err)
	}
	status, err := model.ParseListingStatus(gl.Status)
	if err != nil {
		return nil, fmt.Errorf("status of %s: %q: %w", gl.ID, gl.Status, err)
	}
	return &model.Listing{
		ID:              gl.ID,
		OwnerID:         gl.UserID,
		Make:            gl.Make,
		Model:           gl.Model,
		Year:            gl.Year,
		Price:           gl.Price,
		Mileage:         gl.Mileage,
		FuelType:        gl.FuelType,
		Transmission:    gl.Transmission,
		BodyType:        gl.BodyType,
		Color:           gl.Color,
		EngineSize:      gl.EngineSize,
		Doors:           gl.Doors,
		Seats:           gl.Seats,
		ConditionRating: gl.ConditionRating,
		Description:     gl.Description,
		Image:           gl.Image,
		Images:          images,
		Features:        features,
		Status:          status,
		Views:           gl.Views,
		CreatedAt:       gl.CreatedAt,
		UpdatedAt:       gl.UpdatedAt,
	}, nil
}

func newGListing(l *model.Listing) (*gListing, error) {
	images, err := encodeList(l.Images)
	if err != nil {
		return nil, fmt.Errorf("images: %w", err)
	}
	features, err := encodeList(l.Features)
	if err != nil {
		return nil, fmt.Errorf("features: %w", err)
	}
	return &gListing{
		ID:              l.ID,
		UserID:          l.OwnerID,
		Make:            l.Make,
		Model:           l.Model,
		Year:            l.Year,
		Price:           l.Price,
		Mileage:         l.Mileage,
		FuelType:        l.FuelType,
		Transmission:    l.Transmission,
		BodyType:        l.BodyType,
		Color:           l.Color,
		EngineSize:      l.EngineSize,
		Doors:           l.Doors,
		Seats:           l.Seats,
		ConditionRating: l.ConditionRating,
		Description:     l.Description,
		Image:           l.Image,
		Images:          images,
		Features:        features,
		Status:          l.Status.String(),
		Views:           l.Views,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}, nil
}

func models(gls []gListing) ([]model.Listing, error) {
	ls := make([]model.Listing, 0, len(gls))
	for i := range gls {
		l, err := gls[i].ToModel()
		if err != nil {
			return nil, err
		}
		ls = append(ls, *l)
	}
	return ls, nil
}

// filtered restricts gdb to the active listings which satisfy f.
// Pagination and ordering are left to the caller, so the same
// conditions may be used for counting.
func filtered(gdb *gorm.DB, f *model.Filter) *gorm.DB {
	gdb = gdb.Model(&gListing{}).Where(
		"status = ?", model.ListingStatusActive.String(),
	)
	if f.Query != "" {
		p := containsPattern(f.Query)
		gdb = gdb.Where(
			"(make ILIKE ? OR model ILIKE ? OR description ILIKE ?"+
				" OR features ILIKE ?)",
			p, p, p, p,
		)
	}
	gdb = between(gdb, "price", f.Price)
	gdb = between(gdb, "year", f.Year)
	gdb = between(gdb, "mileage", f.Mileage)
	for _, kv := range [...]struct{ col, v string }{
		{"fuel_type", f.FuelType},
		{"transmission", f.Transmission},
		{"body_type", f.BodyType},
		{"make", f.Make},
	} {
		if kv.v != "" {
			gdb = gdb.Where(kv.col+" = ?", kv.v)
		}
	}
	return gdb
}

func between[T int | float64](
	gdb *gorm.DB, col string, b model.Bounds[T],
) *gorm.DB {
	if b.Min != nil {
		gdb = gdb.Where(col+" >= ?", *b.Min)
	}
	if b.Max != nil {
		gdb = gdb.Where(col+" <= ?", *b.Max)
	}
	return gdb
}

// Search finds one page of the active listings which satisfy f,
// ordered by their creation time, newest first. Listings with the same
// creation time are ordered by their identifiers, so pages are stable.
func Search[Q postgres.Queryer](
	ctx context.Context, q Q, f *model.Filter,
) ([]model.Listing, error) {
	var gls []gListing
	err := filtered(q.GORM(ctx), f).Order(
		"created_at DESC, id DESC",
	).Limit(f.Limit).Offset(f.Offset()).Find(&gls).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gls)
}

// Count counts the active listings which satisfy f.
func Count[Q postgres.Queryer](
	ctx context.Context, q Q, f *model.Filter,
) (int64, error) {
	var n int64
	if err := filtered(q.GORM(ctx), f).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("query: %w", err)
	}
	return n, nil
}

// FetchByIDs fetches the ids listings in one query, whatever their
// status is. Unknown identifiers are ignored.
func FetchByIDs[Q postgres.Queryer](
	ctx context.Context, q Q, ids []uuid.UUID,
) ([]model.Listing, error) {
	var gls []gListing
	err := q.GORM(ctx).Where("id IN ?", ids).Find(&gls).Error
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	return models(gls)
}

// FetchByID fetches one listing, whatever its status is.
func FetchByID[Q postgres.Queryer](
	ctx context.Context, q Q, id uuid.UUID,
) (*model.Listing, error) {
	var gl gListing
	err := q.GORM(ctx).Where("id = ?", id).Take(&gl).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, cerr.NotFound(fmt.Errorf("car %s not found", id))
	case err != nil:
		return nil, fmt.Errorf("query: %w", err)
	}
	return gl.ToModel()
}

// Insert validates and stores l, generating its identifier if it is
// the zero UUID. Missing timestamps are filled with the current time.
func Insert[Q postgres.Queryer](
	ctx context.Context, q Q, l *model.Listing,
) (uuid.UUID, error) {
	now := time.Now()
	if err := l.Validate(now.Year()); err != nil {
		return uuid.Nil, cerr.BadRequest(err)
	}
	gl, err := newGListing(l)
	if err != nil {
		return uuid.Nil, cerr.BadRequest(err)
	}
	if gl.ID == uuid.Nil {
		gl.ID = uuid.New()
	}
	if gl.CreatedAt.IsZero() {
		gl.CreatedAt = now
	}
	if gl.UpdatedAt.IsZero() {
		gl.UpdatedAt = gl.CreatedAt
	}
	err = q.GORM(ctx).Create(gl).Error
	switch {
	case postgres.HasCode(err, postgres.UniqueViolation):
		return uuid.Nil, cerr.Conflict(
			fmt.Errorf("car %s already exists: %w", gl.ID, err),
		)
	case err != nil:
		return uuid.Nil, fmt.Errorf("insert: %w", err)
	}
	return gl.ID, nil
}

// Ping checks that the database server responds to queries.
func Ping[Q postgres.Queryer](ctx context.Context, q Q) error {
	var n int64
	err := q.GORM(ctx).Raw("SELECT 1").Scan(&n).Error
	if err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}
