package charts

// Colors shared by every renderer
const (
	ColorWorkingDay = "#1e90ff" // dodgerblue
	ColorWeekend    = "#00ffff" // cyan
	ColorReference  = "#ee82ee" // violet

	ColorLowRisk      = "#32cd32" // limegreen
	ColorModerateRisk = "#ffa500" // orange
	ColorHighRisk     = "#ff0000" // red
	ColorExtremeRisk  = "#ff00ff" // magenta
)

// zoneAlpha is the opacity of the zone fills
const zoneAlpha = 0.1
