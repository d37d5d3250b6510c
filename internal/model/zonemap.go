package model

type ZoneMap struct {
	ID          int    `json:"id"`
	Zone        string `json:"zone"`
	Path        string `json:"path"`
	SizeFactor  int    `json:"sizeFactor"`
	OffsetX     int    `json:"offsetX,omitempty"`
	OffsetY     int    `json:"offsetY,omitempty"`
	TerritoryID int    `json:"territory"`

	Aetherytes []MapMarker `json:"aetherytes,omitempty"`
}

type MapMarker struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}
