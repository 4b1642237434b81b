package rest

import (
	"encoding/json"
	"net/http"
)

// roomsHandler - serves the current room directory as a JSON array.
func roomsHandler(rooms RoomLister) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if err := json.NewEncoder(w).Encode(rooms.RoomIDs()); err != nil {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
	}
}
