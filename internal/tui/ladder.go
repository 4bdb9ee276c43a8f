package tui

// Field is one rung of the create/edit ladder
type Field int

const (
	FieldName Field = iota
	FieldDescription
	FieldCategory
	FieldProduction
	FieldTags
	FieldMaterials
)

// fieldLadder is the navigation order. Down from the last rung wraps to Name.
var fieldLadder = []Field{FieldName, FieldDescription, FieldCategory, FieldProduction, FieldTags, FieldMaterials}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "Name"
	case FieldDescription:
		return "Description"
	case FieldCategory:
		return "Category"
	case FieldProduction:
		return "Production"
	case FieldTags:
		return "Tags"
	case FieldMaterials:
		return "Materials"
	default:
		return "?"
	}
}

func (f Field) next() Field {
	return fieldLadder[(int(f)+1)%len(fieldLadder)]
}

func (f Field) prev() Field {
	return fieldLadder[(int(f)+len(fieldLadder)-1)%len(fieldLadder)]
}

func (f Field) isText() bool {
	return f == FieldName || f == FieldDescription
}

type flow int

const (
	flowCreate flow = iota
	flowEdit
)

var ladderModes = map[flow][]Mode{
	flowCreate: {ModeCreateName, ModeCreateDescription, ModeCreateCategory, ModeCreateProduction, ModeCreateTags, ModeCreateMaterials},
	flowEdit:   {ModeEditName, ModeEditDescription, ModeEditCategory, ModeEditProduction, ModeEditTags, ModeEditMaterials},
}

// fieldMode returns the ladder mode for a field in a flow
func fieldMode(fl flow, f Field) Mode {
	return ladderModes[fl][f]
}

// fieldOf reports which flow and field a ladder mode belongs to
func fieldOf(mode Mode) (flow, Field, bool) {
	for fl, modes := range ladderModes {
		for i, m := range modes {
			if m == mode {
				return fl, Field(i), true
			}
		}
	}
	return 0, 0, false
}

// selectModes maps a field mode to its selection sub-mode
var selectModes = map[Mode]Mode{
	ModeCreateCategory:  ModeCreateCategorySelect,
	ModeCreateTags:      ModeCreateTagSelect,
	ModeCreateMaterials: ModeCreateMaterialSelect,
	ModeEditTags:        ModeEditTagSelect,
	ModeEditMaterials:   ModeEditMaterialSelect,
}

// parentMode returns the field mode a selection sub-mode returns to
func parentMode(sel Mode) (Mode, bool) {
	for parent, m := range selectModes {
		if m == sel {
			return parent, true
		}
	}
	return 0, false
}

func isSelectMode(mode Mode) bool {
	_, ok := parentMode(mode)
	return ok
}

func isEditMode(mode Mode) bool {
	fl, _, ok := fieldOf(mode)
	if ok {
		return fl == flowEdit
	}
	return mode == ModeEditTagSelect || mode == ModeEditMaterialSelect
}
