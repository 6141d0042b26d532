// Package aggregate computes the statistics shown on admin and product pages.
// Everything here is derived from the slices passed in and never stored.
package aggregate

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"storefront-admin/internal/data/entity"
)

func OrderRevenue(orders []*entity.Order) float64 {
	var revenue float64
	for _, o := range orders {
		revenue += o.Total()
	}
	return revenue
}

func AverageOrderValue(orders []*entity.Order) float64 {
	if len(orders) == 0 {
		return 0
	}
	return OrderRevenue(orders) / float64(len(orders))
}

// CountByStatus always has an entry for each of the five statuses.
// Orders with an unknown status are not counted.
func CountByStatus(orders []*entity.Order) map[entity.OrderStatus]int {
	counts := make(map[entity.OrderStatus]int, 5)
	for _, s := range entity.OrderStatuses() {
		counts[s] = 0
	}
	for _, o := range orders {
		if o.Status.Valid() {
			counts[o.Status]++
		}
	}
	return counts
}

func CountByRole(users []*entity.User) map[entity.UserRole]int {
	counts := map[entity.UserRole]int{
		entity.RoleGuest: 0,
		entity.RoleUser:  0,
		entity.RoleAdmin: 0,
	}
	for _, u := range users {
		if u.Role.Valid() {
			counts[u.Role]++
		}
	}
	return counts
}

// RatingDistribution maps every rating 1..5 to its count. Out of range
// ratings are dropped.
func RatingDistribution(reviews []*entity.Review) map[int]int {
	dist := make(map[int]int, entity.MaxRating)
	for r := entity.MinRating; r <= entity.MaxRating; r++ {
		dist[r] = 0
	}
	for _, rv := range reviews {
		if entity.ValidRating(rv.Rating) {
			dist[rv.Rating]++
		}
	}
	return dist
}

// AverageRating is the mean rating rounded half-up to one decimal place,
// or 0 for no reviews.
func AverageRating(reviews []*entity.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	return RoundHalfUp(float64(sum)/float64(len(reviews)), 1)
}

func RoundHalfUp(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(x*p+0.5) / p
}

type ReviewSort string

const (
	SortNewest      ReviewSort = "newest"
	SortOldest      ReviewSort = "oldest"
	SortHighest     ReviewSort = "highest"
	SortLowest      ReviewSort = "lowest"
	SortMostHelpful ReviewSort = "most-helpful"
)

// ParseReviewSort defaults to newest for an empty value.
func ParseReviewSort(s string) (ReviewSort, error) {
	switch v := ReviewSort(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return SortNewest, nil
	case SortNewest, SortOldest, SortHighest, SortLowest, SortMostHelpful:
		return v, nil
	case "mosthelpful", "most_helpful":
		return SortMostHelpful, nil
	}
	return "", fmt.Errorf("invalid sort %q", s)
}

// SortReviews returns a sorted copy. The sort is stable, so reviews comparing
// equal keep their insertion order.
func SortReviews(reviews []*entity.Review, order ReviewSort) []*entity.Review {
	out := slices.Clone(reviews)

	var cmp func(a, b *entity.Review) int
	switch order {
	case SortOldest:
		cmp = func(a, b *entity.Review) int { return a.CreatedAt.Compare(b.CreatedAt) }
	case SortHighest:
		cmp = func(a, b *entity.Review) int { return b.Rating - a.Rating }
	case SortLowest:
		cmp = func(a, b *entity.Review) int { return a.Rating - b.Rating }
	case SortMostHelpful:
		cmp = func(a, b *entity.Review) int { return b.HelpfulCount - a.HelpfulCount }
	default:
		cmp = func(a, b *entity.Review) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}

	slices.SortStableFunc(out, cmp)
	return out
}

// RatingFilter is 0 for all ratings, otherwise the exact rating to keep.
type RatingFilter int

const RatingAll RatingFilter = 0

func ParseRatingFilter(s string) (RatingFilter, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" || v == "all" {
		return RatingAll, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || !entity.ValidRating(n) {
		return 0, fmt.Errorf("invalid rating filter %q", s)
	}
	return RatingFilter(n), nil
}

func FilterByRating(reviews []*entity.Review, filter RatingFilter) []*entity.Review {
	if filter == RatingAll {
		return slices.Clone(reviews)
	}
	out := make([]*entity.Review, 0, len(reviews))
	for _, rv := range reviews {
		if rv.Rating == int(filter) {
			out = append(out, rv)
		}
	}
	return out
}

type OrderStats struct {
	Count             int
	Revenue           float64
	AverageOrderValue float64
	ByStatus          map[entity.OrderStatus]int
}

func SummarizeOrders(orders []*entity.Order) OrderStats {
	return OrderStats{
		Count:             len(orders),
		Revenue:           OrderRevenue(orders),
		AverageOrderValue: AverageOrderValue(orders),
		ByStatus:          CountByStatus(orders),
	}
}

type ReviewStats struct {
	Count         int
	AverageRating float64
	Distribution  map[int]int
}

func SummarizeReviews(reviews []*entity.Review) ReviewStats {
	return ReviewStats{
		Count:         len(reviews),
		AverageRating: AverageRating(reviews),
		Distribution:  RatingDistribution(reviews),
	}
}
