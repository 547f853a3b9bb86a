package ui

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/fr4nk3nst1ner/jobboard/internal/models"
)

const bannerText = `
     ██╗ ██████╗ ██████╗ ██████╗  ██████╗  █████╗ ██████╗ ██████╗
     ██║██╔═══██╗██╔══██╗██╔══██╗██╔═══██╗██╔══██╗██╔══██╗██╔══██╗
     ██║██║   ██║██████╔╝██████╔╝██║   ██║███████║██████╔╝██║  ██║
██   ██║██║   ██║██╔══██╗██╔══██╗██║   ██║██╔══██║██╔══██╗██║  ██║
╚█████╔╝╚██████╔╝██████╔╝██████╔╝╚██████╔╝██║  ██║██║  ██║██████╔╝
 ╚════╝  ╚═════╝ ╚═════╝ ╚═════╝  ╚═════╝ ╚═╝  ╚═╝╚═╝  ╚═╝╚═════╝
`

// ColorizeText applies a random colour fade to the input text
func ColorizeText(text string) string {
	random := rand.New(rand.NewSource(time.Now().UnixNano()))

	startColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))
	endColor := pterm.NewRGB(uint8(random.Intn(256)), uint8(random.Intn(256)), uint8(random.Intn(256)))

	chars := strings.Split(text, "")
	half := len(chars) / 2
	if half == 0 {
		half = 1
	}

	var sb strings.Builder
	for i, ch := range chars {
		sb.WriteString(startColor.Fade(0, float32(len(chars)), float32(i%half), endColor).Sprint(ch))
	}
	return sb.String()
}

// PrintBanner displays the application banner
func PrintBanner(silence bool) {
	if !silence {
		fmt.Println(ColorizeText(bannerText))
	}
}

// ColorizeSalary colours a salary bound by band.
func ColorizeSalary(n models.Number) string {
	if n.IsEmpty() {
		return pterm.Gray("n/a")
	}

	formatted := FormatSalary(n)
	value, ok := n.Float64()
	if !ok {
		return pterm.Yellow(formatted)
	}

	switch {
	case value >= 150000:
		return pterm.Green(formatted)
	case value >= 80000:
		return pterm.LightGreen(formatted)
	case value >= 40000:
		return pterm.Yellow(formatted)
	default:
		return pterm.Red(formatted)
	}
}
