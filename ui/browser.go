package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/thanhnguyen2187/horadric/d2item"
	"github.com/thanhnguyen2187/horadric/d2item/ditem"
	"github.com/thanhnguyen2187/horadric/d2item/dkind"
	"github.com/thanhnguyen2187/horadric/d2item/dregistry"
	"github.com/thanhnguyen2187/horadric/dfile"
)

type (
	Entry struct {
		Name string
		Kind dkind.Kind
	}
	listing struct {
		lines []string
		err   error
	}
	// Browser lists the recognized files of one directory and shows the items of the chosen one.
	Browser struct {
		dir      string
		registry *dregistry.Registry
		entries  []Entry
		cursor   int
		opened   *Entry
		lines    []string
		err      error
		// listings are keyed by file name, going back and forth between files decodes each once
		listings *lru.Cache[string, listing]
	}
)

const (
	CacheSize = 32
)

func ReadEntries(dir string) ([]Entry, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, `ReadEntries error reading "%s"`, dir)
	}

	entries := make([]Entry, 0, len(files))
	for _, file := range files {
		if file.IsDir() {
			continue
		}
		// files that cannot be read or unpacked are left out like any other unrecognized file
		head, err := dfile.ReadHead(filepath.Join(dir, file.Name()), dkind.MagicSize)
		if err != nil {
			continue
		}
		kind := d2item.ClassifyContainer(head)
		if kind == dkind.Unknown {
			continue
		}
		entries = append(entries, Entry{Name: file.Name(), Kind: kind})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

func CreateBrowser(dir string, registry *dregistry.Registry) (*Browser, error) {
	entries, err := ReadEntries(dir)
	if err != nil {
		return nil, err
	}
	listings, err := lru.New[string, listing](CacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "CreateBrowser error")
	}
	return &Browser{
		dir:      dir,
		registry: registry,
		entries:  entries,
		listings: listings,
	}, nil
}

func describe(placed ditem.Placed) string {
	location := placed.Section
	if placed.Section == ditem.SectionPage {
		location = fmt.Sprintf("page %d", placed.Page)
	}

	item := placed.Item
	name := item.Code
	if item.Ear {
		name = fmt.Sprintf("ear of %s", item.EarData.Name)
	}
	details := make([]string, 0)
	if item.Extended != nil {
		details = append(details, item.Extended.RarityTag().String(), fmt.Sprintf("ilvl %d", item.Extended.Level))
	}
	if item.Ethereal {
		details = append(details, "ethereal")
	}
	if len(item.SocketedItems) > 0 {
		codes := lo.Map(item.SocketedItems, func(child ditem.Item, _ int) string { return child.Code })
		details = append(details, "socketed with "+strings.Join(codes, ", "))
	}

	if len(details) == 0 {
		return fmt.Sprintf("%-10s %s", location, name)
	}
	return fmt.Sprintf("%-10s %s (%s)", location, name, strings.Join(details, ", "))
}

func (s *Browser) decode(entry Entry) listing {
	bs, err := dfile.Read(filepath.Join(s.dir, entry.Name))
	if err != nil {
		return listing{err: err}
	}
	container, err := d2item.DecodeContainer(entry.Kind, bs, s.registry)
	if err != nil {
		return listing{err: err}
	}
	return listing{
		lines: lo.Map(container.Items(), func(placed ditem.Placed, _ int) string { return describe(placed) }),
	}
}

func (s *Browser) open() {
	entry := s.entries[s.cursor]
	s.opened = &entry

	result, ok := s.listings.Get(entry.Name)
	if !ok {
		result = s.decode(entry)
		s.listings.Add(entry.Name, result)
	}
	s.lines = result.lines
	s.err = result.err
}

func (s *Browser) Init() tea.Cmd {
	return nil
}

func (s *Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch keyMsg.String() {
	case "ctrl+c", "q":
		return s, tea.Quit
	case "esc", "backspace":
		s.opened = nil
	case "up", "k":
		if s.opened == nil && s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.opened == nil && s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case "enter":
		if s.opened == nil && len(s.entries) > 0 {
			s.open()
		}
	}
	return s, nil
}

func (s *Browser) View() string {
	output := "HORADRIC\n\n"
	output += "Current directory: " + s.dir + "\n\n"

	if s.opened != nil {
		output += fmt.Sprintf("%s (%s)\n\n", s.opened.Name, s.opened.Kind)
		switch {
		case s.err != nil:
			output += "Error happened decoding: " + s.err.Error() + "\n"
		case len(s.lines) == 0:
			output += "No items\n"
		default:
			output += strings.Join(s.lines, "\n") + "\n"
		}
		output += "\nesc: back, q: quit\n"
		return output
	}

	if len(s.entries) == 0 {
		output += "No save or stash file found\n"
	}
	for i, entry := range s.entries {
		cursor := "  "
		if i == s.cursor {
			cursor = "> "
		}
		output += fmt.Sprintf("%s%-30s %s\n", cursor, entry.Name, entry.Kind)
	}
	output += "\nenter: open, q: quit\n"
	return output
}

func Start(dir string, registry *dregistry.Registry) error {
	browser, err := CreateBrowser(dir, registry)
	if err != nil {
		return err
	}
	if err := tea.NewProgram(browser).Start(); err != nil {
		return errors.Wrap(err, "ui.Start error")
	}
	return nil
}
