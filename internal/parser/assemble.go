package parser

import (
	"github.com/dgallion1/vidbrief/internal/doctree"
)

type openState int

const (
	stateIdle openState = iota
	stateParagraph
	stateList
)

// assembler folds a stream of line tags into a Document. It tracks at most
// one open multi-line block.
type assembler struct {
	doc   *doctree.Document
	state openState
	open  *doctree.Block
}

func newAssembler() *assembler {
	return &assembler{doc: &doctree.Document{}}
}

func (a *assembler) feed(tag LineTag) {
	switch tag.Kind {
	case TagBlank:
		a.close()

	case TagHeading, TagSubheading, TagRomanHeading, TagShoutHeading:
		a.close()
		a.emit(&doctree.Block{
			Kind:    headingKind(tag.Kind),
			Label:   tag.Label,
			Inlines: Inlines(tag.Text),
		})

	case TagNumberedItem:
		a.close()
		a.emit(&doctree.Block{
			Kind:    doctree.KindNumberedEntry,
			Label:   tag.Label,
			Inlines: Inlines(tag.Text),
		})

	case TagBulletItem:
		if a.state != stateList {
			a.close()
			a.open = &doctree.Block{Kind: doctree.KindList}
			a.state = stateList
		}
		a.open.Items = append(a.open.Items, doctree.ListItem{Inlines: Inlines(tag.Text)})

	default:
		if a.state != stateParagraph {
			a.close()
			a.open = &doctree.Block{Kind: doctree.KindParagraph}
			a.state = stateParagraph
		}
		a.open.Inlines = append(a.open.Inlines, Inlines(tag.Text)...)
		a.open.Inlines = append(a.open.Inlines, doctree.Inline{Kind: doctree.InlineLineBreak})
	}
}

// close records the open block, if any, and returns to idle.
func (a *assembler) close() {
	if a.state != stateIdle && a.open != nil {
		a.emit(a.open)
	}
	a.open = nil
	a.state = stateIdle
}

func (a *assembler) emit(b *doctree.Block) {
	a.doc.Blocks = append(a.doc.Blocks, b)
}

// finish closes whatever is still open and hands over the document.
func (a *assembler) finish() *doctree.Document {
	a.close()
	doc := a.doc
	a.doc = nil
	return doc
}

func headingKind(k TagKind) doctree.BlockKind {
	switch k {
	case TagSubheading:
		return doctree.KindSubheading
	case TagRomanHeading:
		return doctree.KindRomanHeading
	case TagShoutHeading:
		return doctree.KindShoutHeading
	}
	return doctree.KindHeading
}
