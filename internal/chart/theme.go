package chart

// Shared look of the three charts.
const (
	FontFamily = "'Poppins', 'Segoe UI', sans-serif"
	ForeColor  = "#4a5568"
	Height     = 350
)

// Palette
const (
	ColorPrimary   = "#4361ee"
	ColorSecondary = "#3f37c9"
	ColorSuccess   = "#4cc9f0"
	ColorAccent    = "#f72585"
	ColorNeutral   = "#4a5568"
)

const gridColor = "#f1f1f1"

func baseChart(id, chartType string) ChartOpts {
	return ChartOpts{
		ID:         id,
		Type:       chartType,
		Height:     Height,
		FontFamily: FontFamily,
		Background: "transparent",
		ForeColor:  ForeColor,
		Toolbar:    Toggle{Show: boolPtr(false)},
		Animations: &Animations{
			Enabled:          true,
			Easing:           "easeinout",
			Speed:            800,
			AnimateGradually: AnimateDelay{Enabled: true, Delay: 150},
			DynamicAnimation: AnimateSpeed{Enabled: true, Speed: 350},
		},
	}
}

func title(text string) *Title {
	return &Title{
		Text:  text,
		Align: "center",
		Style: TextStyle{FontSize: "16px", FontWeight: 600, Color: ColorNeutral},
	}
}

func noData() *NoData {
	return &NoData{
		Text:  "No data",
		Align: "center",
		Style: TextStyle{FontSize: "14px", Color: ColorNeutral},
	}
}
