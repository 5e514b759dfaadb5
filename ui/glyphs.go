package ui

const glyphUnknown = `      -----
     '     |
         .` + "`" + `
        '
        .`

const glyphLightning = `    \\\\
    \\\\\\
       \\\\
         \\\
            \`

const glyphCloudy = `     __         _
   /-   \_/\---/ \
   |         --   |
   \-_/---\__--__-|`

const glyphRaining = `     __         _
   /-   \_/\---/ \
   |         --   |
   |______________|
    . , . , . , .`

const glyphSunny = `     \  ___  /
      /     \
   - |       | -
      \ ___ / .
     / ,  .  \`

const glyphClear = `      ___
    /     \
   |       |
    \ ___ /`

const glyphPartlyCloudy = `     ` + "`" + ` .--- ____
    - /....|    \/ \
    - |...|         |
     , \___\   __  /
      / |   --/  \`

type glyphPair struct {
	day, night string
}

// glyphs maps the provider's condition phrases to artwork
var glyphs = map[string]glyphPair{
	"Tropical Storm":           {glyphLightning, glyphLightning},
	"Thunder and Hail":         {glyphLightning, glyphLightning},
	"Thunderstorms":            {glyphLightning, glyphLightning},
	"Scattered Thunderstorms":  {glyphLightning, glyphLightning},
	"Rain to Snow Showers":     {glyphRaining, glyphRaining},
	"Drizzle":                  {glyphRaining, glyphRaining},
	"Freezing Rain":            {glyphRaining, glyphRaining},
	"Light Rain":               {glyphRaining, glyphRaining},
	"Rain":                     {glyphRaining, glyphRaining},
	"Heavy Rain":               {glyphRaining, glyphRaining},
	"Heavy Snow":               {glyphRaining, glyphRaining},
	"Cloudy":                   {glyphCloudy, glyphCloudy},
	"Mostly Cloudy":            {glyphPartlyCloudy, glyphPartlyCloudy},
	"Partly Cloudy":            {glyphPartlyCloudy, glyphPartlyCloudy},
	"Clear":                    {glyphClear, glyphClear},
	"Fair / Mostly Clear":      {glyphClear, glyphClear},
	"Sunny":                    {glyphSunny, glyphClear},
	"Fair / Mostly Sunny":      {glyphSunny, glyphClear},
	"Rain / Sleet":             {glyphUnknown, glyphUnknown},
	"Wintry Mix Snow / Sleet":  {glyphUnknown, glyphUnknown},
	"Freezing Drizzle":         {glyphUnknown, glyphUnknown},
	"Scattered Flurries":       {glyphUnknown, glyphUnknown},
	"Light Snow":               {glyphUnknown, glyphUnknown},
	"Blowing / Drifting Snow":  {glyphUnknown, glyphUnknown},
	"Snow":                     {glyphUnknown, glyphUnknown},
	"Hail":                     {glyphUnknown, glyphUnknown},
	"Sleet":                    {glyphUnknown, glyphUnknown},
	"Blowing Dust / Sandstorm": {glyphUnknown, glyphUnknown},
	"Foggy":                    {glyphUnknown, glyphUnknown},
	"Haze / Windy":             {glyphUnknown, glyphUnknown},
	"Smoke / Windy":            {glyphUnknown, glyphUnknown},
	"Blowing Spray / Windy":    {glyphUnknown, glyphUnknown},
	"Frigid / Ice Crystals":    {glyphUnknown, glyphUnknown},
}

// Glyph returns the artwork for a condition phrase at the given local hour.
// Hours 6 to 18 use the day variant. Unknown phrases get a question mark.
func Glyph(phrase string, hour int) string {
	pair, ok := glyphs[phrase]
	if !ok {
		return glyphUnknown
	}
	if hour > 5 && hour < 19 {
		return pair.day
	}
	return pair.night
}
