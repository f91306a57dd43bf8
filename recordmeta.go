package sonartel

import (
	"sort"

	"github.com/yuin/stagparser"
)

// recordMetaTags declares, as struct tags, the family each record type
// belongs to — the same information recordtype.go's maps encode
// programmatically, kept here too as a human-authored cross-check the
// CLI inspector reads rather than the runtime dispatch table itself
// (spec §9 design note: "a single RecordType-keyed dispatch table").
type recordMetaTags struct {
	SonarSettings   struct{} `sonartel:"type=7000,family=ping"`
	BeamGeometry    struct{} `sonartel:"type=7004,family=ping"`
	Bathymetry      struct{} `sonartel:"type=7006,family=ping"`
	SideScan        struct{} `sonartel:"type=7007,family=ping"`
	WaterColumn     struct{} `sonartel:"type=7008,family=ping"`
	RawDetection    struct{} `sonartel:"type=7027,family=ping"`
	FileHeader      struct{} `sonartel:"type=7200,family=file"`
	FileCatalog     struct{} `sonartel:"type=7300,family=file"`
	SystemEventMessage struct{} `sonartel:"type=7051,family=comment"`
	Position        struct{} `sonartel:"type=1003,family=aux"`
	Attitude        struct{} `sonartel:"type=1016,family=aux"`
	SVP             struct{} `sonartel:"type=1009,family=aux"`
}

// RecordFamily describes one entry of the CLI inspector's type table.
type RecordFamily struct {
	Field  string
	Type   RecordType
	Family string
}

// DescribeRecordFamilies parses recordMetaTags' struct tags with
// stagparser and returns them sorted by record type, for the "inspect
// --types" CLI output.
func DescribeRecordFamilies() ([]RecordFamily, error) {
	parsed, err := stagparser.ParseStruct(&recordMetaTags{}, "sonartel")
	if err != nil {
		return nil, IOError(err)
	}
	out := make([]RecordFamily, 0, len(parsed))
	for field, defs := range parsed {
		byName := make(map[string]stagparser.Definition, len(defs))
		for _, d := range defs {
			byName[d.Name()] = d
		}
		rf := RecordFamily{Field: field}
		if d, ok := byName["type"]; ok {
			if v, ok := d.Attribute("type"); ok {
				if n, ok := v.(int64); ok {
					rf.Type = RecordType(n)
				}
			}
		}
		if d, ok := byName["family"]; ok {
			if v, ok := d.Attribute("family"); ok {
				if s, ok := v.(string); ok {
					rf.Family = s
				}
			}
		}
		out = append(out, rf)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Type < out[j].Type })
	return out, nil
}
