package api

import (
	"net/http"

	"github.com/jobhub/assessment/internal/assessment"
)

type SkillsResponse struct {
	Skills []string `json:"skills" example:"Java,Python"`
}

// listSkills returns the skill catalog.
// @Summary      List skills
// @Description  Returns the skills an assessment can be generated for.
// @Tags         Skills
// @Produce      json
// @Success      200  {object}  SkillsResponse
// @Router       /skills [get]
func (h *Handler) listSkills(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SkillsResponse{Skills: h.skills})
}

// randomSkills picks two or three skills from the catalog.
// @Summary      Pick random skills
// @Description  Returns two or three distinct skills from the catalog, for a quick assessment.
// @Tags         Skills
// @Produce      json
// @Success      200  {object}  SkillsResponse
// @Router       /skills/random [get]
func (h *Handler) randomSkills(w http.ResponseWriter, r *http.Request) {
	h.rngMu.Lock()
	picked := assessment.RandomSkills(h.skills, h.rng)
	h.rngMu.Unlock()

	respondJSON(w, http.StatusOK, SkillsResponse{Skills: picked})
}
