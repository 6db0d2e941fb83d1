package Controllers

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"HomeSked/Models"
)

// decodeParam unescapes a path parameter. Preset names contain spaces
// and slashes, so clients send them percent-encoded.
func decodeParam(ctx *fiber.Ctx, key string) (string, error) {
	return url.PathUnescape(ctx.Params(key))
}

// PresetTask is a task template inside a preset. Time templates carry
// frequency fields, usage templates carry interval fields, never both.
type PresetTask struct {
	Name           string `json:"name"`
	Description    string `json:"description"`
	TriggerType    string `json:"trigger_type"`
	FrequencyValue int    `json:"frequency_value,omitempty"`
	FrequencyUnit  string `json:"frequency_unit,omitempty"`
	UsageInterval  int64  `json:"usage_interval,omitempty"`
	UsageUnit      string `json:"usage_unit,omitempty"`
}

// EquipmentPreset is a built-in maintenance schedule for a common
// household appliance. The catalog is static; clients use it to seed
// real tasks through the normal task endpoints.
type EquipmentPreset struct {
	Name      string       `json:"name"`
	Icon      string       `json:"icon"`
	UsageUnit string       `json:"usage_unit,omitempty"`
	Tasks     []PresetTask `json:"tasks"`
}

func timeTask(name, description string, value int, unit string) PresetTask {
	return PresetTask{
		Name:           name,
		Description:    description,
		TriggerType:    Models.TriggerTime,
		FrequencyValue: value,
		FrequencyUnit:  unit,
	}
}

func usageTask(name, description string, interval int64, unit string) PresetTask {
	return PresetTask{
		Name:          name,
		Description:   description,
		TriggerType:   Models.TriggerUsage,
		UsageInterval: interval,
		UsageUnit:     unit,
	}
}

var equipmentPresets = []EquipmentPreset{
	{
		Name: "HVAC / Air Handler", Icon: "❄️",
		Tasks: []PresetTask{
			timeTask("Replace air filter", "Replace with correct MERV rating filter. Check filter size printed on old filter frame.", 3, "month"),
			timeTask("Clean condensate drain line", "Pour 1 cup of white vinegar into drain line access point. Flush with water after 30 min.", 6, "month"),
			timeTask("Annual HVAC inspection", "Schedule professional tune-up. Check refrigerant, coils, electrical, belts.", 1, "year"),
			timeTask("Clean evaporator coils", "Use no-rinse coil cleaner spray. Inspect for ice buildup.", 1, "year"),
		},
	},
	{
		Name: "Water Heater", Icon: "🔥",
		Tasks: []PresetTask{
			timeTask("Flush sediment", "Attach hose to drain valve and flush 1-2 gallons until water runs clear.", 1, "year"),
			timeTask("Test pressure relief valve", "Lift lever briefly to verify valve opens and water flows. Replace if valve drips after test.", 1, "year"),
			timeTask("Inspect anode rod", "Check sacrificial anode rod, replace if less than 1/2 inch thick or heavily corroded.", 3, "year"),
		},
	},
	{
		Name: "Refrigerator", Icon: "🧊",
		Tasks: []PresetTask{
			timeTask("Clean condenser coils", "Vacuum or brush coils at rear or beneath unit. Dusty coils increase energy use.", 6, "month"),
			timeTask("Replace water filter", "Replace in-door or in-line water filter. Check model for correct part number.", 6, "month"),
			timeTask("Clean door gaskets", "Wipe with warm soapy water. Test seal by closing door on a dollar bill, it should resist pull.", 1, "year"),
		},
	},
	{
		Name: "Oven", Icon: "🔆",
		Tasks: []PresetTask{
			timeTask("Deep clean oven", "Remove racks and clean interior with oven cleaner or run self-clean cycle. Clean racks separately in sink.", 3, "month"),
			timeTask("Clean oven racks", "Soak racks in hot soapy water, scrub with non-scratch pad, rinse and dry before replacing.", 3, "month"),
			timeTask("Clean burners / range", "Remove and clean stovetop grates/burner caps. Wipe down range surface and control knobs.", 1, "month"),
			timeTask("Clean range hood", "Remove grease filters and wash in hot soapy water or dishwasher. Wipe down hood exterior.", 1, "month"),
			timeTask("Annual calibration check", "Verify oven temperature with an oven thermometer. Adjust calibration offset if needed.", 1, "year"),
		},
	},
	{
		Name: "Microwave", Icon: "📡",
		Tasks: []PresetTask{
			timeTask("Clean microwave interior", "Steam clean with bowl of water and lemon for 3 min. Wipe down interior, turntable, and door seal.", 2, "week"),
			timeTask("Clean exterior and vents", "Wipe down exterior surfaces and clean vent grilles of grease or dust buildup.", 1, "month"),
		},
	},
	{
		Name: "Dishwasher", Icon: "🫧",
		Tasks: []PresetTask{
			timeTask("Clean filter", "Remove and rinse mesh filter under warm water. Scrub with soft brush if clogged.", 1, "month"),
			timeTask("Run cleaning cycle", "Place dishwasher cleaning tablet or 1 cup white vinegar in bottom. Run hot cycle empty.", 1, "month"),
			timeTask("Inspect door gasket", "Check for cracks or buildup. Wipe clean. Replace if cracked.", 1, "year"),
		},
	},
	{
		Name: "Washing Machine", Icon: "🫧",
		Tasks: []PresetTask{
			timeTask("Clean drum", "Run clean cycle with washer cleaner tablet. Wipe door seal after every use to prevent mold.", 1, "month"),
			timeTask("Inspect water supply hoses", "Check for bulges, cracks, or slow drips. Replace rubber hoses every 5 years regardless.", 1, "year"),
			timeTask("Clean lint filter / pump trap", "Check pump filter (front-load: behind access panel). Remove and rinse debris.", 3, "month"),
		},
	},
	{
		Name: "Dryer", Icon: "🌀",
		Tasks: []PresetTask{
			timeTask("Clean lint trap", "Clean after every load. Wash screen monthly with dish soap to remove detergent film.", 1, "month"),
			timeTask("Clean exhaust duct", "Disconnect and vacuum full duct length. Clogged ducts are a fire hazard.", 1, "year"),
		},
	},
	{
		Name: "Garbage Disposal", Icon: "🗑️",
		Tasks: []PresetTask{
			timeTask("Deep clean disposal", "Grind ice cubes with rock salt. Follow with citrus peels. Flush with hot water.", 1, "month"),
		},
	},
	{
		Name: "Smoke / CO Detector", Icon: "🔔",
		Tasks: []PresetTask{
			timeTask("Test alarm", "Press test button, hold until alarm sounds. Verify audible in all rooms.", 1, "month"),
			timeTask("Replace batteries", "Replace even if no low-battery chirp. Use alkaline batteries only.", 1, "year"),
			timeTask("Replace unit", "Smoke detectors expire after 10 years, CO after 5-7 years. Check manufacture date on back.", 7, "year"),
		},
	},
	{
		Name: "Fire Extinguisher", Icon: "🧯",
		Tasks: []PresetTask{
			timeTask("Visual inspection", "Check pressure gauge is in green zone. Check pin and tamper seal intact. No dents or corrosion.", 1, "month"),
			timeTask("Professional inspection", "Have certified technician perform annual inspection and re-tag.", 1, "year"),
		},
	},
	{
		Name: "Exhaust Fan", Icon: "💨",
		Tasks: []PresetTask{
			timeTask("Clean exhaust fan", "Remove cover and vacuum dust from fan blades and grille. Wipe cover before replacing.", 6, "month"),
			timeTask("Test fan operation", "Verify fan turns on and moves adequate air. Listen for unusual noise or vibration.", 1, "year"),
		},
	},
	{
		Name: "Vehicle / Car", Icon: "🚗", UsageUnit: "miles",
		Tasks: []PresetTask{
			usageTask("Oil change", "Conventional oil every 5,000 mi, synthetic every 7,500-10,000 mi. Check owner manual.", 5000, "miles"),
			usageTask("Tire rotation", "Rotate tires in recommended pattern. Inspect tread depth and pressure.", 7500, "miles"),
			usageTask("Air filter replacement", "Inspect engine air filter. Replace if grey/black or clogged.", 15000, "miles"),
			usageTask("Cabin air filter", "Replace cabin air filter, usually behind glove box.", 15000, "miles"),
			usageTask("Brake inspection", "Inspect brake pad thickness and rotor condition. Replace pads at 2-3mm.", 25000, "miles"),
			usageTask("Transmission fluid", "Check and top up. Full flush per manufacturer interval (often 30-60k miles).", 30000, "miles"),
			timeTask("Annual inspection / tags", "State safety and emissions inspection. Renew registration.", 1, "year"),
		},
	},
	{
		Name: "Lawnmower", Icon: "🌿", UsageUnit: "hours",
		Tasks: []PresetTask{
			usageTask("Change oil", "Drain and replace with SAE 30. First change at 5 hrs, then every 50 hrs.", 50, "hours"),
			usageTask("Replace air filter", "Remove, tap out debris, replace foam pre-filter. Replace paper element annually.", 25, "hours"),
			timeTask("Sharpen / replace blade", "Disconnect spark plug wire before working under deck. Sharpen until no nicks.", 1, "year"),
			timeTask("Replace spark plug", "Check gap with feeler gauge per manual. Replace if electrode worn.", 1, "year"),
			timeTask("Drain fuel for storage", "At end of season, run engine dry or add fuel stabilizer. Clean deck.", 1, "year"),
		},
	},
	{
		Name: "Generator", Icon: "⚡", UsageUnit: "hours",
		Tasks: []PresetTask{
			timeTask("Test run", "Run under load for 30 minutes monthly to condition engine and battery.", 1, "month"),
			usageTask("Oil change", "Change oil after first 8 hours on new unit, then every 100 hours or annually.", 100, "hours"),
			timeTask("Replace spark plug", "Inspect and replace spark plug annually or per hours in manual.", 1, "year"),
		},
	},
	{
		Name: "Pool / Spa Pump", Icon: "🏊",
		Tasks: []PresetTask{
			timeTask("Clean pump basket", "Turn off pump, remove basket, clear debris. Check O-ring and re-seal.", 2, "week"),
			timeTask("Backwash / clean filter", "Sand filter: backwash when PSI rises 8-10 above baseline. Cartridge: rinse monthly.", 1, "month"),
			timeTask("Inspect pump seals / bearings", "Listen for grinding. Check for water leaks around seal plate.", 1, "year"),
		},
	},
	{
		Name: "Sump Pump", Icon: "💧",
		Tasks: []PresetTask{
			timeTask("Test sump pump", "Pour water into pit to trigger float switch. Confirm pump activates and drains.", 3, "month"),
			timeTask("Clean pit and screen", "Remove pump, clean pit of debris and sediment. Rinse inlet screen.", 1, "year"),
		},
	},
	{
		Name: "Garage Door Opener", Icon: "🚪",
		Tasks: []PresetTask{
			timeTask("Lubricate moving parts", "Apply garage door lubricant (not WD-40) to hinges, rollers, springs, and rail.", 6, "month"),
			timeTask("Test auto-reverse safety", "Place a 2x4 flat on the floor under the door. Door must reverse on contact.", 1, "month"),
			timeTask("Replace batteries", "Replace remote and wall keypad batteries.", 2, "year"),
		},
	},
}

func findEquipmentPreset(name string) *EquipmentPreset {
	for i := range equipmentPresets {
		if equipmentPresets[i].Name == name {
			return &equipmentPresets[i]
		}
	}
	return nil
}

// PresetController serves the built-in equipment preset catalog
type PresetController struct{}

func NewPresetController() *PresetController {
	return &PresetController{}
}

// GetPresets lists the catalog with task counts.
// GET /api/presets
func (c *PresetController) GetPresets(ctx *fiber.Ctx) error {
	list := make([]fiber.Map, 0, len(equipmentPresets))
	for _, preset := range equipmentPresets {
		list = append(list, fiber.Map{
			"name":       preset.Name,
			"icon":       preset.Icon,
			"usage_unit": preset.UsageUnit,
			"task_count": len(preset.Tasks),
		})
	}
	return ctx.JSON(list)
}

// GetPreset retrieves one preset with its full task templates.
// GET /api/presets/:name
func (c *PresetController) GetPreset(ctx *fiber.Ctx) error {
	name, err := decodeParam(ctx, "name")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid preset name"})
	}
	preset := findEquipmentPreset(name)
	if preset == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Preset not found"})
	}
	return ctx.JSON(preset)
}
