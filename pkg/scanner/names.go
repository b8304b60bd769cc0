package scanner

import "strings"

// displayNames maps lowercase component identifiers to their PascalCase
// display names for multi-word or otherwise irregular components. Everything
// not listed here resolves by capitalizing the first letter.
var displayNames = map[string]string{
	"animateonscroll":   "AnimateOnScroll",
	"autocomplete":      "AutoComplete",
	"blockui":           "BlockUI",
	"cascadeselect":     "CascadeSelect",
	"checkboxgroup":     "CheckboxGroup",
	"colorpicker":       "ColorPicker",
	"columngroup":       "ColumnGroup",
	"confirmdialog":     "ConfirmDialog",
	"confirmpopup":      "ConfirmPopup",
	"contextmenu":       "ContextMenu",
	"datatable":         "DataTable",
	"dataview":          "DataView",
	"datepicker":        "DatePicker",
	"deferredcontent":   "DeferredContent",
	"dynamicdialog":     "DynamicDialog",
	"fileupload":        "FileUpload",
	"floatlabel":        "FloatLabel",
	"iconfield":         "IconField",
	"iftalabel":         "IftaLabel",
	"inlinemessage":     "InlineMessage",
	"inputgroup":        "InputGroup",
	"inputgroupaddon":   "InputGroupAddon",
	"inputicon":         "InputIcon",
	"inputmask":         "InputMask",
	"inputnumber":       "InputNumber",
	"inputotp":          "InputOtp",
	"inputtext":         "InputText",
	"megamenu":          "MegaMenu",
	"metergroup":        "MeterGroup",
	"multiselect":       "MultiSelect",
	"orderlist":         "OrderList",
	"organizationchart": "OrganizationChart",
	"overlaybadge":      "OverlayBadge",
	"overlaypanel":      "OverlayPanel",
	"panelmenu":         "PanelMenu",
	"picklist":          "PickList",
	"progressbar":       "ProgressBar",
	"progressspinner":   "ProgressSpinner",
	"radiobutton":       "RadioButton",
	"radiobuttongroup":  "RadioButtonGroup",
	"scrollpanel":       "ScrollPanel",
	"scrolltop":         "ScrollTop",
	"selectbutton":      "SelectButton",
	"speeddial":         "SpeedDial",
	"splitbutton":       "SplitButton",
	"splitterpanel":     "SplitterPanel",
	"stepitem":          "StepItem",
	"steplist":          "StepList",
	"steppanel":         "StepPanel",
	"steppanels":        "StepPanels",
	"tablist":           "TabList",
	"tabmenu":           "TabMenu",
	"tabpanel":          "TabPanel",
	"tabpanels":         "TabPanels",
	"tabview":           "TabView",
	"tieredmenu":        "TieredMenu",
	"togglebutton":      "ToggleButton",
	"toggleswitch":      "ToggleSwitch",
	"treeselect":        "TreeSelect",
	"treetable":         "TreeTable",
	"virtualscroller":   "VirtualScroller",
}

// DisplayName resolves a lowercase component identifier to the PascalCase
// name its declaration interfaces are prefixed with (ButtonProps,
// DataTableEmitsOptions, ...).
func DisplayName(name string) string {
	if display, ok := displayNames[name]; ok {
		return display
	}
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
