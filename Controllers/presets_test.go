package Controllers

import (
	"testing"

	"HomeSked/Models"
	"HomeSked/Scheduler"
)

var validFrequencyUnits = map[string]bool{
	Scheduler.UnitDay:   true,
	Scheduler.UnitWeek:  true,
	Scheduler.UnitMonth: true,
	Scheduler.UnitYear:  true,
}

func TestEquipmentPresetCatalog(t *testing.T) {
	if len(equipmentPresets) == 0 {
		t.Fatal("equipment preset catalog is empty")
	}

	seen := map[string]bool{}
	for _, preset := range equipmentPresets {
		if preset.Name == "" || preset.Icon == "" {
			t.Errorf("preset %q missing name or icon", preset.Name)
		}
		if seen[preset.Name] {
			t.Errorf("duplicate preset name %q", preset.Name)
		}
		seen[preset.Name] = true

		if len(preset.Tasks) == 0 {
			t.Errorf("preset %q has no task templates", preset.Name)
		}
		for _, task := range preset.Tasks {
			if task.Name == "" || task.Description == "" {
				t.Errorf("preset %q has a template missing name or description", preset.Name)
			}
			switch task.TriggerType {
			case Models.TriggerTime:
				if task.FrequencyValue <= 0 || !validFrequencyUnits[task.FrequencyUnit] {
					t.Errorf("preset %q template %q has invalid frequency %d %q",
						preset.Name, task.Name, task.FrequencyValue, task.FrequencyUnit)
				}
				if task.UsageInterval != 0 || task.UsageUnit != "" {
					t.Errorf("preset %q time template %q carries usage fields", preset.Name, task.Name)
				}
			case Models.TriggerUsage:
				if task.UsageInterval <= 0 || task.UsageUnit == "" {
					t.Errorf("preset %q template %q has invalid usage interval %d %q",
						preset.Name, task.Name, task.UsageInterval, task.UsageUnit)
				}
				if task.FrequencyValue != 0 || task.FrequencyUnit != "" {
					t.Errorf("preset %q usage template %q carries frequency fields", preset.Name, task.Name)
				}
				if preset.UsageUnit == "" {
					t.Errorf("preset %q has usage templates but no usage unit", preset.Name)
				}
				if task.UsageUnit != preset.UsageUnit {
					t.Errorf("preset %q template %q unit %q differs from preset unit %q",
						preset.Name, task.Name, task.UsageUnit, preset.UsageUnit)
				}
			default:
				t.Errorf("preset %q template %q has unknown trigger %q", preset.Name, task.Name, task.TriggerType)
			}
		}
	}
}

func TestRoomPresetCatalog(t *testing.T) {
	if len(roomPresets) == 0 {
		t.Fatal("room preset catalog is empty")
	}

	seen := map[string]bool{}
	for _, preset := range roomPresets {
		if preset.Name == "" || preset.Icon == "" || preset.Description == "" {
			t.Errorf("room preset %q missing name, icon, or description", preset.Name)
		}
		if seen[preset.Name] {
			t.Errorf("duplicate room preset name %q", preset.Name)
		}
		seen[preset.Name] = true

		if len(preset.RoomTasks) == 0 {
			t.Errorf("room preset %q has no room tasks", preset.Name)
		}
		for _, task := range preset.RoomTasks {
			if task.FrequencyValue <= 0 || !validFrequencyUnits[task.FrequencyUnit] {
				t.Errorf("room preset %q task %q has invalid frequency %d %q",
					preset.Name, task.Name, task.FrequencyValue, task.FrequencyUnit)
			}
		}

		// Every equipment suggestion with a preset type must resolve
		// against the equipment catalog.
		for _, eq := range preset.DefaultEquipment {
			if eq.PresetType == "" {
				continue
			}
			if findEquipmentPreset(eq.PresetType) == nil {
				t.Errorf("room preset %q references unknown equipment preset %q", preset.Name, eq.PresetType)
			}
		}
	}
}

func TestFindEquipmentPreset(t *testing.T) {
	if findEquipmentPreset("Vehicle / Car") == nil {
		t.Error("expected Vehicle / Car preset to exist")
	}
	if findEquipmentPreset("Submarine") != nil {
		t.Error("expected unknown preset lookup to return nil")
	}
}
