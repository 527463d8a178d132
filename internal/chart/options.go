package chart

// Options mirrors the subset of the ApexCharts options object the dashboard
// uses. Values are built fresh for every render and never shared.
type Options struct {
	Chart       ChartOpts    `json:"chart"`
	Colors      []string     `json:"colors,omitempty"`
	Title       *Title       `json:"title,omitempty"`
	XAxis       *XAxis       `json:"xaxis,omitempty"`
	YAxis       *YAxis       `json:"yaxis,omitempty"`
	Labels      []string     `json:"labels,omitempty"`
	PlotOptions *PlotOptions `json:"plotOptions,omitempty"`
	DataLabels  *DataLabels  `json:"dataLabels,omitempty"`
	Grid        *Grid        `json:"grid,omitempty"`
	Stroke      *Stroke      `json:"stroke,omitempty"`
	Markers     *Markers     `json:"markers,omitempty"`
	Fill        *Fill        `json:"fill,omitempty"`
	Tooltip     *Tooltip     `json:"tooltip,omitempty"`
	NoData      *NoData      `json:"noData,omitempty"`
}

type ChartOpts struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Height     int         `json:"height"`
	FontFamily string      `json:"fontFamily,omitempty"`
	Background string      `json:"background,omitempty"`
	ForeColor  string      `json:"foreColor,omitempty"`
	Toolbar    Toggle      `json:"toolbar"`
	Zoom       *Toggle     `json:"zoom,omitempty"`
	Animations *Animations `json:"animations,omitempty"`
	DropShadow *DropShadow `json:"dropShadow,omitempty"`
}

type Toggle struct {
	Show    *bool `json:"show,omitempty"`
	Enabled *bool `json:"enabled,omitempty"`
}

type Animations struct {
	Enabled          bool         `json:"enabled"`
	Easing           string       `json:"easing,omitempty"`
	Speed            int          `json:"speed,omitempty"`
	AnimateGradually AnimateDelay `json:"animateGradually"`
	DynamicAnimation AnimateSpeed `json:"dynamicAnimation"`
}

type AnimateDelay struct {
	Enabled bool `json:"enabled"`
	Delay   int  `json:"delay"`
}

type AnimateSpeed struct {
	Enabled bool `json:"enabled"`
	Speed   int  `json:"speed"`
}

type DropShadow struct {
	Enabled bool    `json:"enabled"`
	Blur    int     `json:"blur"`
	Opacity float64 `json:"opacity"`
}

type Title struct {
	Text  string    `json:"text"`
	Align string    `json:"align,omitempty"`
	Style TextStyle `json:"style"`
}

type TextStyle struct {
	FontSize   string `json:"fontSize,omitempty"`
	FontWeight int    `json:"fontWeight,omitempty"`
	Color      string `json:"color,omitempty"`
}

type XAxis struct {
	// Categories is always emitted, even when empty, so the axis is reset.
	Categories []string    `json:"categories"`
	AxisBorder *Toggle     `json:"axisBorder,omitempty"`
	AxisTicks  *Toggle     `json:"axisTicks,omitempty"`
	Labels     *AxisLabels `json:"labels,omitempty"`
}

type AxisLabels struct {
	Style  *TextStyle `json:"style,omitempty"`
	Rotate *int       `json:"rotate,omitempty"`
}

type YAxis struct {
	Show            *bool `json:"show,omitempty"`
	DecimalsInFloat *int  `json:"decimalsInFloat,omitempty"`
}

type PlotOptions struct {
	Bar   *BarPlot   `json:"bar,omitempty"`
	Radar *RadarPlot `json:"radar,omitempty"`
}

type BarPlot struct {
	BorderRadius int             `json:"borderRadius"`
	ColumnWidth  string          `json:"columnWidth"`
	Distributed  bool            `json:"distributed"`
	DataLabels   BarLabelOptions `json:"dataLabels"`
}

type BarLabelOptions struct {
	Position string `json:"position"`
}

type RadarPlot struct {
	Size     int      `json:"size"`
	Polygons Polygons `json:"polygons"`
}

type Polygons struct {
	StrokeColors string      `json:"strokeColors"`
	Fill         PolygonFill `json:"fill"`
}

type PolygonFill struct {
	Colors []string `json:"colors"`
}

type DataLabels struct {
	Enabled    bool             `json:"enabled"`
	Background *LabelBackground `json:"background,omitempty"`
}

type LabelBackground struct {
	Enabled      bool `json:"enabled"`
	BorderRadius int  `json:"borderRadius"`
}

type Grid struct {
	BorderColor     string `json:"borderColor"`
	StrokeDashArray int    `json:"strokeDashArray"`
}

type Stroke struct {
	Curve string `json:"curve"`
	Width int    `json:"width"`
}

type Markers struct {
	Size        int         `json:"size"`
	StrokeWidth *int        `json:"strokeWidth,omitempty"`
	Hover       MarkerHover `json:"hover"`
}

type MarkerHover struct {
	Size int `json:"size"`
}

type Fill struct {
	Type     string    `json:"type"`
	Gradient *Gradient `json:"gradient,omitempty"`
}

type Gradient struct {
	Shade          string  `json:"shade"`
	Type           string  `json:"type"`
	ShadeIntensity float64 `json:"shadeIntensity"`
	OpacityFrom    float64 `json:"opacityFrom"`
	OpacityTo      float64 `json:"opacityTo"`
	Stops          []int   `json:"stops"`
}

type Tooltip struct {
	Theme  string     `json:"theme"`
	Style  *TextStyle `json:"style,omitempty"`
	Marker *Toggle    `json:"marker,omitempty"`
}

// NoData is the text ApexCharts shows for an empty series.
type NoData struct {
	Text  string    `json:"text"`
	Align string    `json:"align,omitempty"`
	Style TextStyle `json:"style"`
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
