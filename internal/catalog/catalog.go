// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package catalog

import (
	"errors"
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/poimap/internal/validation"
)

// Category groups POIs in the client's category list.
type Category struct {
	ID   string `koanf:"id" json:"id" validate:"required"`
	Name string `koanf:"name" json:"name" validate:"required"`
}

// POI is one catalog entry, resolved against Wikidata by WikidataID.
type POI struct {
	ID         string `koanf:"id" json:"id" validate:"required"`
	CategoryID string `koanf:"category_id" json:"categoryId" validate:"required"`
	WikidataID string `koanf:"wikidata_id" json:"wikidataId" validate:"required,wikidataid"`
}

// TeamMember is listed on the about screen.
type TeamMember struct {
	Name string `koanf:"name" json:"name" validate:"required"`
	AM   string `koanf:"am" json:"am" validate:"required"`
}

// CategoryCount is a category and the number of POIs assigned to it.
type CategoryCount struct {
	Category
	Count int `json:"count"`
}

// Data is the on-disk shape of a catalog file.
type Data struct {
	Team        []TeamMember        `koanf:"team" validate:"dive"`
	Categories  []Category          `koanf:"categories" validate:"required,min=1,dive"`
	POIs        []POI               `koanf:"pois" validate:"dive"`
	ExtraImages map[string][]string `koanf:"extra_images"`
}

// ErrInvalidCatalog wraps every catalog consistency failure.
var ErrInvalidCatalog = errors.New("invalid catalog")

// Catalog is the immutable, indexed POI catalog.
type Catalog struct {
	data       Data
	categories map[string]int
	pois       map[string]int
}

// New validates data and indexes it.
func New(data Data) (*Catalog, error) {
	if verr := validation.ValidateStruct(&data); verr != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCatalog, verr.Error())
	}

	c := &Catalog{
		data:       data,
		categories: make(map[string]int, len(data.Categories)),
		pois:       make(map[string]int, len(data.POIs)),
	}

	for i, cat := range data.Categories {
		if _, dup := c.categories[cat.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, cat.ID)
		}
		c.categories[cat.ID] = i
	}
	for i, poi := range data.POIs {
		if _, dup := c.pois[poi.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate poi %q", ErrInvalidCatalog, poi.ID)
		}
		if _, ok := c.categories[poi.CategoryID]; !ok {
			return nil, fmt.Errorf("%w: poi %q references unknown category %q", ErrInvalidCatalog, poi.ID, poi.CategoryID)
		}
		c.pois[poi.ID] = i
	}
	for poiID := range data.ExtraImages {
		if _, ok := c.pois[poiID]; !ok {
			return nil, fmt.Errorf("%w: extra images for unknown poi %q", ErrInvalidCatalog, poiID)
		}
	}
	if c.data.ExtraImages == nil {
		c.data.ExtraImages = map[string][]string{}
	}

	return c, nil
}

// Load reads a YAML catalog file. An empty path returns the built-in catalog.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return New(DefaultData())
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load catalog file %s: %w", path, err)
	}

	var data Data
	if err := k.Unmarshal("", &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal catalog file %s: %w", path, err)
	}
	return New(data)
}

// Categories returns categories in catalog order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.data.Categories...)
}

// Category looks up a category by id.
func (c *Catalog) Category(id string) (Category, bool) {
	i, ok := c.categories[id]
	if !ok {
		return Category{}, false
	}
	return c.data.Categories[i], true
}

// POI looks up a POI by id.
func (c *Catalog) POI(id string) (POI, bool) {
	i, ok := c.pois[id]
	if !ok {
		return POI{}, false
	}
	return c.data.POIs[i], true
}

// POIsInCategory returns the category's POIs in catalog order.
func (c *Catalog) POIsInCategory(categoryID string) []POI {
	out := make([]POI, 0)
	for _, poi := range c.data.POIs {
		if poi.CategoryID == categoryID {
			out = append(out, poi)
		}
	}
	return out
}

// CategoryCounts returns every category with its POI count, zero included.
func (c *Catalog) CategoryCounts() []CategoryCount {
	counts := make(map[string]int, len(c.data.Categories))
	for _, poi := range c.data.POIs {
		counts[poi.CategoryID]++
	}
	out := make([]CategoryCount, 0, len(c.data.Categories))
	for _, cat := range c.data.Categories {
		out = append(out, CategoryCount{Category: cat, Count: counts[cat.ID]})
	}
	return out
}

// ExtraImages returns the Commons filenames configured for a POI.
func (c *Catalog) ExtraImages(poiID string) []string {
	return c.data.ExtraImages[poiID]
}

// Team returns the about-screen members.
func (c *Catalog) Team() []TeamMember {
	return append([]TeamMember(nil), c.data.Team...)
}

// Size returns the number of POIs.
func (c *Catalog) Size() int {
	return len(c.data.POIs)
}
