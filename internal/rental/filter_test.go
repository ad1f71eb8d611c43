package rental

import "testing"

func TestFilterUnits(t *testing.T) {
	units := []Unit{
		{UnitId: "SH-0001", Title: "شقة الساحل - مميزة", PropertyType: PropertyApartment, Location: "الساحل الشمالي", Rooms: 2},
		{UnitId: "SH-0002", Title: "شالية العين السخنة", PropertyType: PropertyChalet, Location: "العين السخنة", Rooms: 3},
		{UnitId: "SH-0003", Title: "Sea View Villa", PropertyType: PropertyVilla, Location: "مطروح", Rooms: 5},
	}

	tests := []struct {
		name   string
		filter UnitFilter
		want   []string
	}{
		{"no filter", UnitFilter{}, []string{"SH-0001", "SH-0002", "SH-0003"}},
		{"location", UnitFilter{Location: "العين السخنة"}, []string{"SH-0002"}},
		{"property type", UnitFilter{PropertyType: PropertyApartment}, []string{"SH-0001"}},
		{"min rooms", UnitFilter{MinRooms: 3}, []string{"SH-0002", "SH-0003"}},
		{"search by id", UnitFilter{Search: "sh-0003"}, []string{"SH-0003"}},
		{"search by title case insensitive", UnitFilter{Search: "sea view"}, []string{"SH-0003"}},
		{"no match", UnitFilter{Location: "مطروح", MinRooms: 6}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterUnits(units, tt.filter)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterUnits() returned %d units, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].UnitId != tt.want[i] {
					t.Errorf("FilterUnits()[%d] = %v, want %v", i, got[i].UnitId, tt.want[i])
				}
			}
		})
	}
}
