package Controllers

import (
	"github.com/gofiber/fiber/v2"
)

// RoomTask is a room-level cleaning task template. Room tasks are
// always time triggered.
type RoomTask struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	FrequencyValue int    `json:"frequency_value"`
	FrequencyUnit  string `json:"frequency_unit"`
}

// PresetEquipment names a piece of equipment a room preset suggests.
// PresetType keys into the equipment preset catalog, empty when the
// equipment has no canned schedule.
type PresetEquipment struct {
	Name        string `json:"name"`
	PresetType  string `json:"preset_type,omitempty"`
	Description string `json:"description"`
}

// RoomPreset bundles the tasks and equipment a typical room starts with.
type RoomPreset struct {
	Name             string            `json:"name"`
	Icon             string            `json:"icon"`
	Description      string            `json:"description"`
	RoomTasks        []RoomTask        `json:"room_tasks"`
	DefaultEquipment []PresetEquipment `json:"default_equipment"`
}

func roomTask(name, description string, value int, unit string) RoomTask {
	return RoomTask{Name: name, Description: description, FrequencyValue: value, FrequencyUnit: unit}
}

var roomPresets = []RoomPreset{
	{
		Name: "Kitchen", Icon: "🍳", Description: "Cooking and food prep area",
		RoomTasks: []RoomTask{
			roomTask("Deep clean oven", "Remove racks and clean interior with oven cleaner. Clean racks separately in sink.", 3, "month"),
			roomTask("Clean range hood filter", "Remove grease filters and wash in hot soapy water or dishwasher.", 1, "month"),
			roomTask("Clean microwave", "Steam clean with bowl of water and lemon. Wipe turntable and interior.", 2, "week"),
			roomTask("Sanitize sink and drain", "Scrub sink basin, clean drain strainer, pour baking soda + vinegar down drain.", 1, "week"),
			roomTask("Wipe down cabinet fronts", "Wipe grease buildup from cabinet doors, especially near range.", 1, "month"),
		},
		DefaultEquipment: []PresetEquipment{
			{Name: "Refrigerator", PresetType: "Refrigerator", Description: "Main kitchen refrigerator"},
			{Name: "Dishwasher", PresetType: "Dishwasher"},
			{Name: "Garbage Disposal", PresetType: "Garbage Disposal"},
		},
	},
	{
		Name: "Bathroom", Icon: "🚿", Description: "Full or half bathroom",
		RoomTasks: []RoomTask{
			roomTask("Clean toilet", "Scrub bowl with toilet brush and cleaner. Wipe exterior, base, and behind.", 1, "week"),
			roomTask("Scrub shower / tub", "Scrub tiles, grout, and fixtures. Clean drain strainer. Rinse thoroughly.", 2, "week"),
			roomTask("Clean sink and mirror", "Wipe sink basin and faucet. Clean mirror with glass cleaner.", 1, "week"),
			roomTask("Mop floor", "Sweep then mop bathroom floor including behind toilet.", 1, "week"),
			roomTask("Re-caulk shower", "Inspect grout and caulk for cracks or mold. Re-caulk as needed.", 1, "year"),
			roomTask("Clean exhaust fan", "Remove cover and vacuum dust from fan blades and grille.", 6, "month"),
		},
		DefaultEquipment: []PresetEquipment{
			{Name: "Exhaust Fan", Description: "Bathroom ventilation fan"},
		},
	},
	{
		Name: "Laundry Room", Icon: "🫧", Description: "Washer, dryer, utility area",
		RoomTasks: []RoomTask{
			roomTask("Wipe down washer exterior", "Wipe top, sides, and controls. Clean detergent drawer.", 1, "month"),
			roomTask("Clean dryer exterior", "Wipe exterior surfaces and clean around and behind unit.", 1, "month"),
			roomTask("Check behind units", "Pull out washer/dryer to check for moisture, lint buildup, or hose issues.", 1, "year"),
		},
		DefaultEquipment: []PresetEquipment{
			{Name: "Washing Machine", PresetType: "Washing Machine"},
			{Name: "Dryer", PresetType: "Dryer"},
		},
	},
	{
		Name: "Garage", Icon: "🏗️", Description: "Vehicle storage and workshop area",
		RoomTasks: []RoomTask{
			roomTask("Sweep garage floor", "Sweep out dust, debris, and leaves. Check for oil stains.", 1, "month"),
			roomTask("Organise shelving", "Check storage organisation, dispose of hazmat items properly.", 6, "month"),
			roomTask("Inspect for pests", "Check corners, boxes, and wall edges for rodent or insect evidence.", 3, "month"),
		},
		DefaultEquipment: []PresetEquipment{
			{Name: "Garage Door Opener", PresetType: "Garage Door Opener"},
			{Name: "Vehicle", PresetType: "Vehicle / Car", Description: "Primary vehicle, update make/model/mileage after creation"},
		},
	},
	{
		Name: "Basement", Icon: "🏚️", Description: "Mechanical room, storage, utility",
		RoomTasks: []RoomTask{
			roomTask("Inspect for moisture", "Check walls, floor, and around windows for dampness or efflorescence.", 1, "month"),
			roomTask("Test GFCI outlets", "Press test and reset buttons on all GFCI outlets. Replace if faulty.", 1, "year"),
			roomTask("Check sump pit level", "Visually inspect sump pit for debris and unusual water level.", 1, "month"),
		},
		DefaultEquipment: []PresetEquipment{
			{Name: "HVAC / Furnace", PresetType: "HVAC / Air Handler", Description: "Main heating and cooling system"},
			{Name: "Water Heater", PresetType: "Water Heater"},
			{Name: "Sump Pump", PresetType: "Sump Pump"},
		},
	},
	{
		Name: "Living Room", Icon: "🛋️", Description: "Main living and entertainment area",
		RoomTasks: []RoomTask{
			roomTask("Vacuum carpets / rugs", "Vacuum all floor coverings including under furniture.", 1, "week"),
			roomTask("Dust surfaces", "Dust shelves, electronics, baseboards, and ceiling fans.", 2, "week"),
			roomTask("Clean windows", "Clean interior window glass and wipe sills.", 3, "month"),
			roomTask("Deep clean upholstery", "Vacuum and spot-treat sofa and chairs. Use upholstery cleaner seasonally.", 6, "month"),
		},
		DefaultEquipment: []PresetEquipment{
			{Name: "Smoke Detector", PresetType: "Smoke / CO Detector", Description: "Living room smoke / CO detector"},
		},
	},
	{
		Name: "Bedroom", Icon: "🛏️", Description: "Master or guest bedroom",
		RoomTasks: []RoomTask{
			roomTask("Change bed linens", "Strip and wash all bed linens including pillowcases.", 1, "week"),
			roomTask("Vacuum / mop floor", "Vacuum carpet or mop hard floors including under bed.", 1, "week"),
			roomTask("Dust surfaces", "Dust nightstands, dressers, ceiling fan blades, and window sills.", 2, "week"),
			roomTask("Rotate mattress", "Rotate mattress 180 degrees. Flip if double-sided.", 6, "month"),
			roomTask("Wash pillows and duvet", "Machine wash pillows and duvet insert according to care label.", 6, "month"),
		},
		DefaultEquipment: []PresetEquipment{},
	},
	{
		Name: "Home Office", Icon: "💻", Description: "Workspace and study area",
		RoomTasks: []RoomTask{
			roomTask("Dust electronics", "Dust monitor, keyboard, tower, and peripherals. Clean keyboard with compressed air.", 1, "month"),
			roomTask("Cable management check", "Inspect cables for fraying. Tidy cable runs.", 6, "month"),
			roomTask("Vacuum / clean floor", "Vacuum carpet or mop floor including under desk chair.", 1, "week"),
		},
		DefaultEquipment: []PresetEquipment{},
	},
	{
		Name: "Outdoor / Yard", Icon: "🌿", Description: "Yard, garden, and outdoor equipment",
		RoomTasks: []RoomTask{
			roomTask("Inspect gutters", "Check gutters and downspouts for debris, sagging, or leaks.", 6, "month"),
			roomTask("Clean gutters", "Remove debris from gutters. Flush with hose and check downspout flow.", 1, "year"),
			roomTask("Check exterior caulk", "Inspect caulk around windows, doors, and trim. Re-caulk where cracked or missing.", 1, "year"),
			roomTask("Inspect roof", "Visual check from ground for missing/damaged shingles, flashing, or ridge.", 1, "year"),
			roomTask("Fertilize lawn", "Apply seasonal fertilizer per product instructions and grass type.", 3, "month"),
		},
		DefaultEquipment: []PresetEquipment{
			{Name: "Lawnmower", PresetType: "Lawnmower"},
			{Name: "Generator", PresetType: "Generator", Description: "Backup generator"},
		},
	},
	{
		Name: "Pool / Hot Tub", Icon: "🏊", Description: "Swimming pool or spa area",
		RoomTasks: []RoomTask{
			roomTask("Test water chemistry", "Test pH (7.2-7.6), chlorine (1-3ppm), alkalinity. Adjust as needed.", 2, "week"),
			roomTask("Skim surface", "Remove leaves and debris from water surface with skimmer net.", 2, "week"),
			roomTask("Vacuum pool floor", "Vacuum floor and walls. Brush tile line before vacuuming.", 1, "week"),
			roomTask("Shock treatment", "Add pool shock per label. Run pump 8+ hrs. Do not swim for 24 hrs.", 2, "week"),
			roomTask("Inspect safety equipment", "Check life rings, rope and float line, drain covers, and gate latches.", 1, "month"),
		},
		DefaultEquipment: []PresetEquipment{
			{Name: "Pool Pump", PresetType: "Pool / Spa Pump"},
			{Name: "Smoke / CO Detector", PresetType: "Smoke / CO Detector", Description: "Outdoor area detector if applicable"},
		},
	},
	{
		Name: "Attic", Icon: "🏠", Description: "Attic storage and insulation space",
		RoomTasks: []RoomTask{
			roomTask("Inspect insulation", "Check insulation depth and coverage. Look for gaps, settling, or moisture damage.", 1, "year"),
			roomTask("Check ventilation", "Verify soffit and ridge vents are unobstructed.", 1, "year"),
			roomTask("Inspect for pests", "Check for rodent droppings, chewed insulation, or nesting material.", 6, "month"),
			roomTask("Check roof deck", "Look for water staining, daylight through roof, or soft spots on deck boards.", 1, "year"),
		},
		DefaultEquipment: []PresetEquipment{},
	},
}

func findRoomPreset(name string) *RoomPreset {
	for i := range roomPresets {
		if roomPresets[i].Name == name {
			return &roomPresets[i]
		}
	}
	return nil
}

// RoomPresetController serves the built-in room preset catalog
type RoomPresetController struct{}

func NewRoomPresetController() *RoomPresetController {
	return &RoomPresetController{}
}

// GetRoomPresets lists the catalog with task and equipment counts.
// GET /api/room-presets
func (c *RoomPresetController) GetRoomPresets(ctx *fiber.Ctx) error {
	list := make([]fiber.Map, 0, len(roomPresets))
	for _, preset := range roomPresets {
		list = append(list, fiber.Map{
			"name":            preset.Name,
			"icon":            preset.Icon,
			"description":     preset.Description,
			"room_task_count": len(preset.RoomTasks),
			"equipment_count": len(preset.DefaultEquipment),
		})
	}
	return ctx.JSON(list)
}

// EnrichedPresetEquipment attaches the canned task templates from the
// matching equipment preset to a suggested piece of equipment.
type EnrichedPresetEquipment struct {
	PresetEquipment
	UsageUnit string       `json:"usage_unit,omitempty"`
	Tasks     []PresetTask `json:"tasks"`
}

// GetRoomPreset retrieves one room preset with its equipment suggestions
// expanded to include their maintenance schedules.
// GET /api/room-presets/:name
func (c *RoomPresetController) GetRoomPreset(ctx *fiber.Ctx) error {
	name, err := decodeParam(ctx, "name")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid preset name"})
	}
	preset := findRoomPreset(name)
	if preset == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preset not found"})
	}

	enriched := make([]EnrichedPresetEquipment, 0, len(preset.DefaultEquipment))
	for _, eq := range preset.DefaultEquipment {
		entry := EnrichedPresetEquipment{PresetEquipment: eq, Tasks: []PresetTask{}}
		if eq.PresetType != "" {
			if equipPreset := findEquipmentPreset(eq.PresetType); equipPreset != nil {
				entry.UsageUnit = equipPreset.UsageUnit
				entry.Tasks = equipPreset.Tasks
			}
		}
		enriched = append(enriched, entry)
	}

	return ctx.JSON(fiber.Map{
		"name":              preset.Name,
		"icon":              preset.Icon,
		"description":       preset.Description,
		"room_tasks":        preset.RoomTasks,
		"default_equipment": enriched,
	})
}
