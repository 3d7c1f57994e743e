// POIMap - Points of Interest Enrichment for Mobile Maps
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/poimap

package catalog

// DefaultData is the built-in catalog: three categories of five POIs each.
// Deployments replace it with catalog.path.
func DefaultData() Data {
	return Data{
		Team: []TeamMember{
			{Name: "Member 1", AM: "AM1"},
			{Name: "Member 2", AM: "AM2"},
		},
		Categories: []Category{
			{ID: "monuments", Name: "Monuments"},
			{ID: "museums", Name: "Museums"},
			{ID: "nature", Name: "Natural Attractions"},
		},
		POIs: []POI{
			{ID: "poi-1", CategoryID: "monuments", WikidataID: "Q10288"}, // Parthenon
			{ID: "poi-2", CategoryID: "monuments", WikidataID: "Q10285"}, // Colosseum
			{ID: "poi-3", CategoryID: "monuments", WikidataID: "Q243"},   // Eiffel Tower
			{ID: "poi-4", CategoryID: "monuments", WikidataID: "Q9202"},  // Statue of Liberty
			{ID: "poi-5", CategoryID: "monuments", WikidataID: "Q9141"},  // Taj Mahal

			{ID: "poi-6", CategoryID: "museums", WikidataID: "Q19675"},   // Louvre
			{ID: "poi-7", CategoryID: "museums", WikidataID: "Q6373"},    // British Museum
			{ID: "poi-8", CategoryID: "museums", WikidataID: "Q160236"},  // Metropolitan Museum of Art
			{ID: "poi-9", CategoryID: "museums", WikidataID: "Q160112"},  // Museo del Prado
			{ID: "poi-10", CategoryID: "museums", WikidataID: "Q190804"}, // Rijksmuseum

			{ID: "poi-11", CategoryID: "nature", WikidataID: "Q513"},    // Mount Everest
			{ID: "poi-12", CategoryID: "nature", WikidataID: "Q118841"}, // Grand Canyon
			{ID: "poi-13", CategoryID: "nature", WikidataID: "Q39231"},  // Mount Fuji
			{ID: "poi-14", CategoryID: "nature", WikidataID: "Q1374"},   // Matterhorn
			{ID: "poi-15", CategoryID: "nature", WikidataID: "Q7296"},   // Kilimanjaro
		},
		ExtraImages: map[string][]string{},
	}
}
