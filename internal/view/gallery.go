package view

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/tourfront/internal/logger"
	"github.com/iliyamo/tourfront/internal/model"
)

// MsgToursFailed is the only content shown when the tour list cannot load.
const MsgToursFailed = "Failed to fetch tours. Please try again later."

// promoMarkup is added to the real price to build the struck-through one.
var promoMarkup = decimal.NewFromInt(500)

// TourAPI lists tours for the gallery.
type TourAPI interface {
	ListTours(ctx context.Context) ([]model.Tour, error)
}

// Mode is what the gallery renders.
type Mode int

const (
	ModeLoading Mode = iota
	ModeError
	ModeCards
)

// GalleryView is the public tour grid.  A fresh view is loading until
// LoadOnMount settles.
type GalleryView struct {
	Tours   []model.Tour
	Loading bool
	Err     string

	api TourAPI
}

// NewGalleryView returns a gallery that has not loaded yet.
func NewGalleryView(api TourAPI) *GalleryView {
	return &GalleryView{api: api, Loading: true}
}

// LoadOnMount issues exactly one list request.  Either the full collection
// or the error message ends up in the view, never both.
func (g *GalleryView) LoadOnMount(ctx context.Context) {
	tours, err := g.api.ListTours(ctx)
	g.Loading = false
	if err != nil {
		logger.GetLogger().Errorw("Error fetching tours", "error", err)
		g.Tours = nil
		g.Err = MsgToursFailed
		return
	}
	g.Tours = tours
	g.Err = ""
}

// Mode reports whether the gallery is loading, failed or has cards.
func (g *GalleryView) Mode() Mode {
	switch {
	case g.Loading:
		return ModeLoading
	case g.Err != "":
		return ModeError
	default:
		return ModeCards
	}
}

// Select returns the detail route of t.  No request is made.
func (g *GalleryView) Select(t model.Tour) string {
	return "/tours/" + url.PathEscape(t.ID)
}

// Find returns the loaded tour with id.
func (g *GalleryView) Find(id string) (model.Tour, bool) {
	for _, t := range g.Tours {
		if t.ID == id {
			return t, true
		}
	}
	return model.Tour{}, false
}

// TourCard is the display model of one gallery card.
type TourCard struct {
	ID       string
	Title    string
	Image    string
	Href     string
	Duration string
	Price    PriceBlock
}

// PriceBlock is the price line of a card.  Was and Badge are empty unless
// the tour has a usable price.
type PriceBlock struct {
	Current string
	Was     string
	Badge   string
}

// HasPromo reports whether the struck-through price and badge are shown.
func (p PriceBlock) HasPromo() bool { return p.Was != "" }

// Cards builds one card per loaded tour.
func (g *GalleryView) Cards() []TourCard {
	cards := make([]TourCard, 0, len(g.Tours))
	for _, t := range g.Tours {
		cards = append(cards, g.Card(t))
	}
	return cards
}

// Card builds the display model of t.
func (g *GalleryView) Card(t model.Tour) TourCard {
	return TourCard{
		ID:       t.ID,
		Title:    t.Title,
		Image:    t.TourImage,
		Href:     g.Select(t),
		Duration: DurationLabel(t.Nights),
		Price:    PriceFor(t.Price),
	}
}

// DurationLabel renders a stay of nights as "N+1 days & N nights".
func DurationLabel(nights int) string {
	return fmt.Sprintf("%d days & %d nights", nights+1, nights)
}

// PriceFor renders the promotional price block.  The "was" price is always
// the real price plus 500 and the badge is fixed; neither comes from the
// backend.
func PriceFor(p model.Price) PriceBlock {
	if !p.Displayable() {
		return PriceBlock{Current: "USD N/A"}
	}
	return PriceBlock{
		Current: "USD " + FormatAmount(p.Amount),
		Was:     "USD " + FormatAmount(p.Amount.Add(promoMarkup)),
		Badge:   "SAVE USD 500",
	}
}
