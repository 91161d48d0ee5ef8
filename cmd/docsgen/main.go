package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/mcweebus/quietcurrent/internal/game"
)

type docFile struct {
	Name    string
	Title   string
	Content string
}

func main() {
	root := flag.String("out", filepath.Join("docs", "reference", "catalogs"), "directory for the generated catalogs")
	flag.Parse()

	if err := writeCatalogs(*root); err != nil {
		fatal(err)
	}
}

func writeCatalogs(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}
	files := catalogs()
	for _, f := range files {
		path := filepath.Join(root, f.Name)
		if err := os.WriteFile(path, []byte(f.Content), 0o644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	indexPath := filepath.Join(root, "README.md")
	if err := os.WriteFile(indexPath, []byte(generateCatalogIndex(files)), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", indexPath)
	return nil
}

func catalogs() []docFile {
	return []docFile{
		generateBuildingsDoc(),
		generateResidentsDoc(),
		generateWanderersDoc(),
		generateCropsDoc(),
		generateFlowersDoc(),
	}
}

func generateCatalogIndex(files []docFile) string {
	var b strings.Builder
	b.WriteString("# Data Catalogs\n\n")
	b.WriteString("Generated from the current Go source using `go run ./cmd/docsgen`.\n\n")
	for _, f := range files {
		b.WriteString(fmt.Sprintf("- [%s](./%s)\n", f.Title, f.Name))
	}
	return b.String()
}

func generateBuildingsDoc() docFile {
	items := game.Buildings()
	empty := game.NewWorld("", game.VariantNetwork, 0)

	var b strings.Builder
	b.WriteString("# Buildings\n\n")
	b.WriteString("Source: `internal/game/buildings.go` (`Buildings`).\n\n")
	b.WriteString(fmt.Sprintf("Total buildings: **%d**. Nothing can be built before the panel is connected.\n\n", len(items)))
	b.WriteString("| Key | Name | Cost | Requires | Effect |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, item := range items {
		b.WriteString("| ")
		b.WriteString(escape(string(item.Key)))
		b.WriteString(" | ")
		b.WriteString(escape(item.Name))
		b.WriteString(" | ")
		b.WriteString(escape(item.Cost.Describe(empty)))
		b.WriteString(" | ")
		b.WriteString(escape(string(item.Requires)))
		b.WriteString(" | ")
		b.WriteString(escape(item.Description))
		b.WriteString(" |\n")
	}
	return docFile{Name: "buildings.md", Title: "Buildings", Content: b.String()}
}

func generateResidentsDoc() docFile {
	items := game.ResidentKinds()
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	var b strings.Builder
	b.WriteString("# Residents\n\n")
	b.WriteString("Source: `internal/game/residents.go` (`ResidentKinds`).\n\n")
	b.WriteString(fmt.Sprintf("Total residents: **%d**. Capacity: **%d**.\n\n", len(items), game.ResidentCapacity))
	b.WriteString("| Name | Needs | Mood Swing | Contribution | Community | Guards Connector | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- | --- | --- |\n")
	for _, r := range items {
		b.WriteString("| ")
		b.WriteString(escape(r.Name))
		b.WriteString(" | ")
		b.WriteString(escape(describeRule(r.Primary)))
		b.WriteString(" | ")
		b.WriteString(escape(describeRule(r.Secondary)))
		b.WriteString(" | ")
		b.WriteString(escape(describeRule(r.Effect)))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(r.CommunityBonus))
		b.WriteString(" | ")
		b.WriteString(yesNo(r.GuardsConnector))
		b.WriteString(" | ")
		b.WriteString(escape(r.Description))
		b.WriteString(" |\n")
	}
	return docFile{Name: "residents.md", Title: "Residents", Content: b.String()}
}

func generateWanderersDoc() docFile {
	items := game.WandererKinds()
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	var b strings.Builder
	b.WriteString("# Wanderers\n\n")
	b.WriteString("Source: `internal/game/wanderers.go` (`WandererKinds`).\n\n")
	b.WriteString(fmt.Sprintf("Total wanderers: **%d**.\n\n", len(items)))
	b.WriteString("| Name | Gives | Wants | Stay Chance | Carries Fragment |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, k := range items {
		b.WriteString("| ")
		b.WriteString(escape(k.Name))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%d %s", k.GiveAmount, k.Give))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%d %s", k.WantAmount, k.Want))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%.0f%%", k.StayChance*100))
		b.WriteString(" | ")
		b.WriteString(yesNo(k.Fragment))
		b.WriteString(" |\n")
	}
	return docFile{Name: "wanderers.md", Title: "Wanderers", Content: b.String()}
}

func generateCropsDoc() docFile {
	items := game.Crops()

	var b strings.Builder
	b.WriteString("# Crops\n\n")
	b.WriteString("Source: `internal/game/garden_crops.go` (`Crops`). Crop-row gardens only.\n\n")
	b.WriteString(fmt.Sprintf("Total crops: **%d**.\n\n", len(items)))
	b.WriteString("| Key | Name | Yields | Soil Bonus | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, c := range items {
		b.WriteString("| ")
		b.WriteString(escape(c.Key))
		b.WriteString(" | ")
		b.WriteString(escape(c.Name))
		b.WriteString(" | ")
		b.WriteString(escape(formatYields(c.Yields)))
		b.WriteString(" | ")
		b.WriteString(strconv.Itoa(c.SoilBonus))
		b.WriteString(" | ")
		b.WriteString(escape(c.Description))
		b.WriteString(" |\n")
	}
	return docFile{Name: "crops.md", Title: "Crops", Content: b.String()}
}

func generateFlowersDoc() docFile {
	items := game.FlowerVarieties()

	var b strings.Builder
	b.WriteString("# Flowers\n\n")
	b.WriteString("Source: `internal/game/flowers.go` (`FlowerVarieties`).\n\n")
	b.WriteString(fmt.Sprintf("Total varieties: **%d**. Bed slots: **%d**.\n\n", len(items), game.FlowerSlots))
	b.WriteString("| Key | Speed | Self-seed Chance | Bloom Life | Description |\n")
	b.WriteString("| --- | --- | --- | --- | --- |\n")
	for _, f := range items {
		b.WriteString("| ")
		b.WriteString(escape(f.Key))
		b.WriteString(" | ")
		b.WriteString(formatFloat(f.Speed))
		b.WriteString(" | ")
		b.WriteString(fmt.Sprintf("%.1f%%", f.SeedChance*100))
		b.WriteString(" | ")
		b.WriteString(formatFloat(f.BloomLife))
		b.WriteString(" | ")
		b.WriteString(escape(f.Description))
		b.WriteString(" |\n")
	}
	return docFile{Name: "flowers.md", Title: "Flowers", Content: b.String()}
}

// describeRule renders a condition or effect value as Type{Field:value}.
func describeRule(v any) string {
	if v == nil {
		return ""
	}
	s := strings.TrimPrefix(fmt.Sprintf("%T%+v", v, v), "game.")
	return strings.TrimSuffix(s, "{}")
}

func formatYields(yields []game.CropYield) string {
	parts := make([]string, 0, len(yields))
	for _, y := range yields {
		parts = append(parts, fmt.Sprintf("%d-%d %s", y.Min, y.Max, y.Resource))
	}
	return strings.Join(parts, ", ")
}

func formatFloat(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func escape(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return ""
	}
	v = strings.ReplaceAll(v, "|", "\\|")
	v = strings.ReplaceAll(v, "\n", "<br>")
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
