// Package tui is a read-only terminal browser over the requirement
// catalogue: a topics list and the requirement list of the selected
// topic. It consumes topic and requirement names only and never writes
// back into the model.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/vk/reqgrid/internal/catalog"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	focusedPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62"))

	blurredPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))
)

// topicItem adapts one top-level topic to list.Item.
type topicItem struct {
	id    string
	topic *catalog.Topic
}

func (i topicItem) Title() string       { return i.id }
func (i topicItem) Description() string { return i.topic.Name }
func (i topicItem) FilterValue() string { return i.id + " " + i.topic.Name }

// requirementItem adapts one requirement to list.Item.
type requirementItem struct {
	id   string
	name string
}

func (i requirementItem) Title() string       { return i.id }
func (i requirementItem) Description() string { return i.name }
func (i requirementItem) FilterValue() string { return i.id + " " + i.name }

const (
	focusTopics = iota
	focusRequirements
)

// Model is the bubbletea model for the catalogue browser.
type Model struct {
	project      *catalog.Project
	topics       list.Model
	requirements list.Model
	focus        int
	width        int
	height       int
}

// New builds a browser over the given project.
func New(project *catalog.Project) Model {
	topicItems := make([]list.Item, 0, project.Topics.Len())
	for pair := project.Topics.Oldest(); pair != nil; pair = pair.Next() {
		topicItems = append(topicItems, topicItem{id: pair.Key, topic: pair.Value})
	}

	topics := list.New(topicItems, list.NewDefaultDelegate(), 0, 0)
	topics.Title = "Topics"
	topics.SetShowHelp(false)
	topics.SetFilteringEnabled(false)

	requirements := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	requirements.Title = "Requirements"
	requirements.SetShowHelp(false)
	requirements.SetFilteringEnabled(false)

	m := Model{
		project:      project,
		topics:       topics,
		requirements: requirements,
		focus:        focusTopics,
	}
	m.syncRequirements()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.setSize()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			if m.focus == focusTopics {
				m.focus = focusRequirements
			} else {
				m.focus = focusTopics
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	if m.focus == focusTopics {
		before := m.topics.Index()
		m.topics, cmd = m.topics.Update(msg)
		if m.topics.Index() != before {
			m.syncRequirements()
		}
	} else {
		m.requirements, cmd = m.requirements.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	title := titleStyle.Render(fmt.Sprintf("%s %s", m.project.Name, m.project.Version))

	topicsPane := blurredPaneStyle
	requirementsPane := blurredPaneStyle
	if m.focus == focusTopics {
		topicsPane = focusedPaneStyle
	} else {
		requirementsPane = focusedPaneStyle
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		topicsPane.Render(m.topics.View()),
		requirementsPane.Render(m.requirements.View()),
	)
}

// syncRequirements rebuilds the requirement list for the currently
// selected topic.
func (m *Model) syncRequirements() {
	selected, ok := m.topics.SelectedItem().(topicItem)
	if !ok {
		m.requirements.SetItems(nil)
		return
	}
	m.requirements.SetItems(requirementItems(selected.topic.Requirements))
	m.requirements.ResetSelected()
}

func requirementItems(requirements *orderedmap.OrderedMap[string, catalog.Requirement]) []list.Item {
	items := make([]list.Item, 0, requirements.Len())
	for pair := requirements.Oldest(); pair != nil; pair = pair.Next() {
		items = append(items, requirementItem{id: pair.Key, name: pair.Value.Name})
	}
	return items
}

// setSize splits the available height between the two panes, leaving a
// row for the title and accounting for pane borders.
func (m *Model) setSize() {
	paneHeight := (m.height - 1) / 2
	innerHeight := paneHeight - 2
	innerWidth := m.width - 2
	if innerHeight < 1 {
		innerHeight = 1
	}
	if innerWidth < 1 {
		innerWidth = 1
	}
	m.topics.SetSize(innerWidth, innerHeight)
	m.requirements.SetSize(innerWidth, innerHeight)
}

// Run starts the browser in the alternate screen and blocks until the
// user quits.
func Run(project *catalog.Project) error {
	_, err := tea.NewProgram(New(project), tea.WithAltScreen()).Run()
	return err
}
