package tui

import (
	"github.com/javiermolinar/abastecimentos/internal/tui/view"
)

// modalMaxWidth is the widest the detail modal gets.
const modalMaxWidth = 60

// openDetail shows the record under the cursor.
func (m *Model) openDetail() {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return
	}
	record := m.items[m.cursor]
	m.selected = &record
	m.modalReturn = m.mode
	m.modalType = ModalDetail
	m.modal.Open()
	m.setMode(ModeModal, "open detail")
}

// closeModal hides the modal and forgets the selected record.
func (m *Model) closeModal(reason string) {
	m.modal.Close()
	m.modalType = ModalNone
	m.selected = nil
	m.setMode(m.modalReturn, reason)
}

// renderModalContent renders the current modal.
func (m Model) renderModalContent() string {
	switch m.modalType {
	case ModalDetail:
		return m.renderDetailModal()
	default:
		return ""
	}
}

func (m Model) modalStyles() view.ModalStyles {
	modal := m.styles.ModalStyle
	if m.width > 0 && m.width-4 < modalMaxWidth {
		modal = modal.Width(max(m.width-4, 20))
	}
	return view.ModalStyles{
		ModalHeaderStyle:       m.styles.ModalHeaderStyle,
		ModalTitleStyle:        m.styles.ModalTitleStyle,
		ModalFooterStyle:       m.styles.ModalFooterStyle,
		ModalStyle:             modal,
		ModalButtonStyle:       m.styles.ModalButtonStyle,
		ModalButtonActiveStyle: m.styles.ModalButtonActiveStyle,
		ModalBodyStyle:         m.styles.ModalBodyStyle,
	}
}

// renderDetailModal renders the selected record.
func (m Model) renderDetailModal() string {
	if m.selected == nil {
		return ""
	}
	body := view.RenderDetailBody(view.DetailModel{Row: m.recordRow(*m.selected)}, view.DetailStyles{
		BodyStyle:         m.styles.ModalBodyStyle,
		LabelStyle:        m.styles.ModalLabelStyle,
		SectionTitleStyle: m.styles.ModalSectionTitleStyle,
		TotalStyle:        m.styles.ModalTotalStyle,
	})
	styles := m.modalStyles()
	return view.RenderModalFrame("Detalhes do Abastecimento", body, view.DetailFooter(styles), styles)
}
