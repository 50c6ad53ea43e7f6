package dregistry

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type (
	// Tables mirrors the four text tables the registry is built from.
	Tables struct {
		Armors  []ItemDef `yaml:"armors"`
		Weapons []ItemDef `yaml:"weapons"`
		Miscs   []ItemDef `yaml:"miscs"`
		Stats   []StatDef `yaml:"stats"`
	}
	row map[string]string
)

const (
	FileArmors    = "Armor.txt"
	FileWeapons   = "Weapons.txt"
	FileMiscs     = "Misc.txt"
	FileItemStats = "ItemStatCost.txt"
)

func (r row) getInt(column string) (int, error) {
	value := strings.TrimSpace(r[column])
	if value == "" {
		return 0, nil
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.Wrapf(err, `column "%s"`, column)
	}
	return result, nil
}

func readRows(reader io.Reader) ([]row, error) {
	tsvReader := csv.NewReader(reader)
	tsvReader.Comma = '\t'
	tsvReader.LazyQuotes = true
	tsvReader.FieldsPerRecord = -1

	records, err := tsvReader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "readRows error")
	}
	if len(records) == 0 {
		return nil, errors.New("readRows error: missing header line")
	}

	header := records[0]
	rows := make([]row, 0, len(records)-1)
	for _, record := range records[1:] {
		r := row{}
		for i, value := range record {
			if i < len(header) {
				r[header[i]] = value
			}
		}
		rows = append(rows, r)
	}
	return rows, nil
}

// ParseItemTable reads Armor.txt, Weapons.txt or Misc.txt. Rows without a code, such as the
// "Expansion" separator, are skipped.
func ParseItemTable(reader io.Reader) ([]ItemDef, error) {
	rows, err := readRows(reader)
	if err != nil {
		return nil, errors.Wrap(err, "ParseItemTable error")
	}

	defs := make([]ItemDef, 0, len(rows))
	for i, r := range rows {
		code := strings.TrimSpace(r["code"])
		if code == "" {
			continue
		}
		stackable, err := r.getInt("stackable")
		if err != nil {
			return nil, errors.Wrapf(err, "ParseItemTable error at row %d", i+2)
		}
		defs = append(
			defs,
			ItemDef{
				Code:      code,
				Name:      r["name"],
				Stackable: stackable != 0,
			},
		)
	}
	return defs, nil
}

func ParseStatTable(reader io.Reader) ([]StatDef, error) {
	rows, err := readRows(reader)
	if err != nil {
		return nil, errors.Wrap(err, "ParseStatTable error")
	}

	defs := make([]StatDef, 0, len(rows))
	for i, r := range rows {
		if strings.TrimSpace(r["ID"]) == "" {
			continue
		}
		def := StatDef{Name: r["Stat"]}
		columns := []struct {
			name   string
			target *int
		}{
			{"Save Bits", &def.SaveBits},
			{"Save Add", &def.SaveAdd},
			{"Save Param Bits", &def.SaveParamBits},
			{"Encode", &def.Encode},
			{"CSvBits", &def.CharSaveBits},
		}
		id, err := r.getInt("ID")
		if err != nil {
			return nil, errors.Wrapf(err, "ParseStatTable error at row %d", i+2)
		}
		if id < 0 || id >= StatTerminator {
			return nil, errors.Errorf("ParseStatTable error at row %d: stat id %d out of range", i+2, id)
		}
		def.ID = uint16(id)
		for _, column := range columns {
			*column.target, err = r.getInt(column.name)
			if err != nil {
				return nil, errors.Wrapf(err, "ParseStatTable error at row %d", i+2)
			}
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// LoadDir builds a registry from the four text tables found in dir.
func LoadDir(dir string) (*Registry, error) {
	tables := Tables{}
	itemFiles := []struct {
		name   string
		target *[]ItemDef
	}{
		{FileArmors, &tables.Armors},
		{FileWeapons, &tables.Weapons},
		{FileMiscs, &tables.Miscs},
	}
	for _, itemFile := range itemFiles {
		defs, err := parseFile(filepath.Join(dir, itemFile.name), ParseItemTable)
		if err != nil {
			return nil, err
		}
		*itemFile.target = defs
	}
	stats, err := parseFile(filepath.Join(dir, FileItemStats), ParseStatTable)
	if err != nil {
		return nil, err
	}
	tables.Stats = stats

	return tables.Build()
}

func parseFile[T any](path string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, `LoadDir error opening "%s"`, path)
	}
	defer file.Close()

	defs, err := parse(file)
	if err != nil {
		return nil, errors.Wrapf(err, `LoadDir error parsing "%s"`, path)
	}
	return defs, nil
}

func LoadYAML(reader io.Reader) (*Registry, error) {
	tables := Tables{}
	if err := yaml.NewDecoder(reader).Decode(&tables); err != nil {
		return nil, errors.Wrap(err, "LoadYAML error")
	}
	return tables.Build()
}

func (t Tables) Build() (*Registry, error) {
	return Build(t.Armors, t.Weapons, t.Miscs, t.Stats)
}
