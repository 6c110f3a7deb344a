package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storefront-backend/internal/domain"
)

func (r *Repository) CreateCarousel(ctx context.Context, c domain.Carousel) (int64, error) {
	var id int64
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO carousel (store_id, image_one, image_one_header, image_one_text,
		                       image_two, image_two_header, image_two_text)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		c.StoreID, c.ImageOne, c.ImageOneHeader, c.ImageOneText,
		c.ImageTwo, c.ImageTwoHeader, c.ImageTwoText,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert carousel: %w", err)
	}
	return id, nil
}

func (r *Repository) GetCarousel(ctx context.Context, storeID int64) (*domain.Carousel, error) {
	var c domain.Carousel
	err := r.db.QueryRowContext(ctx,
		`SELECT id, store_id, image_one, image_one_header, image_one_text,
		        image_two, image_two_header, image_two_text
		 FROM carousel WHERE store_id = $1`,
		storeID,
	).Scan(&c.ID, &c.StoreID, &c.ImageOne, &c.ImageOneHeader, &c.ImageOneText,
		&c.ImageTwo, &c.ImageTwoHeader, &c.ImageTwoText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarouselNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query carousel for store %d: %w", storeID, err)
	}
	return &c, nil
}

type CarouselUpdate struct {
	ImageOne       *string
	ImageOneHeader *string
	ImageOneText   *string
	ImageTwo       *string
	ImageTwoHeader *string
	ImageTwoText   *string
}

func (r *Repository) UpdateCarousel(ctx context.Context, storeID int64, upd CarouselUpdate) (*domain.Carousel, error) {
	var c domain.Carousel
	err := r.db.QueryRowContext(ctx,
		`UPDATE carousel SET
		   image_one        = COALESCE($2, image_one),
		   image_one_header = COALESCE($3, image_one_header),
		   image_one_text   = COALESCE($4, image_one_text),
		   image_two        = COALESCE($5, image_two),
		   image_two_header = COALESCE($6, image_two_header),
		   image_two_text   = COALESCE($7, image_two_text)
		 WHERE store_id = $1
		 RETURNING id, store_id, image_one, image_one_header, image_one_text,
		           image_two, image_two_header, image_two_text`,
		storeID, upd.ImageOne, upd.ImageOneHeader, upd.ImageOneText,
		upd.ImageTwo, upd.ImageTwoHeader, upd.ImageTwoText,
	).Scan(&c.ID, &c.StoreID, &c.ImageOne, &c.ImageOneHeader, &c.ImageOneText,
		&c.ImageTwo, &c.ImageTwoHeader, &c.ImageTwoText)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCarouselNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update carousel for store %d: %w", storeID, err)
	}
	return &c, nil
}
