package questionnaire

import (
	"sort"

	"github.com/yourusername/survey-api/internal/domain/entity"
	"github.com/yourusername/survey-api/internal/domain/repository"
)

// LinkPlan is the diff between the stored links of one kind and the requested target ids.
// Add holds target ids; Restore, Keep and Remove hold link row ids.
type LinkPlan struct {
	Add     []uint
	Restore []uint
	Keep    []uint
	Remove  []uint
}

// AssociationResult reports the applied programme and class plans.
type AssociationResult struct {
	Programmes LinkPlan
	Classes    LinkPlan
}

// linkRow is the part of a link row the planner needs.
type linkRow struct {
	LinkID   uint
	TargetID uint
	Active   bool
}

func programmeRows(links []entity.ProgrammeQuestionnaire) []linkRow {
	rows := make([]linkRow, len(links))
	for i, l := range links {
		rows[i] = linkRow{LinkID: l.ID, TargetID: l.ProgrammeID, Active: l.IsActive()}
	}
	return rows
}

func classRows(links []entity.ClassQuestionnaire) []linkRow {
	rows := make([]linkRow, len(links))
	for i, l := range links {
		rows[i] = linkRow{LinkID: l.ID, TargetID: l.ClassID, Active: l.IsActive()}
	}
	return rows
}

// planLinks diffs stored rows against target ids. A soft-deleted row for a requested target
// is restored instead of inserting a new one. Extra active rows for the same target are removed.
func planLinks(rows []linkRow, targets []uint) LinkPlan {
	byTarget := make(map[uint]linkRow, len(rows))
	var plan LinkPlan

	for _, r := range rows {
		cur, ok := byTarget[r.TargetID]
		switch {
		case !ok:
			byTarget[r.TargetID] = r
		case r.Active && cur.Active:
			plan.Remove = append(plan.Remove, r.LinkID)
		case r.Active:
			byTarget[r.TargetID] = r
		case !cur.Active && r.LinkID > cur.LinkID:
			byTarget[r.TargetID] = r
		}
	}

	wanted := make(map[uint]bool, len(targets))
	for _, t := range targets {
		if wanted[t] {
			continue
		}
		wanted[t] = true
		row, ok := byTarget[t]
		switch {
		case !ok:
			plan.Add = append(plan.Add, t)
		case row.Active:
			plan.Keep = append(plan.Keep, row.LinkID)
		default:
			plan.Restore = append(plan.Restore, row.LinkID)
		}
	}

	for target, row := range byTarget {
		if row.Active && !wanted[target] {
			plan.Remove = append(plan.Remove, row.LinkID)
		}
	}

	sortIDs(plan.Add)
	sortIDs(plan.Restore)
	sortIDs(plan.Keep)
	sortIDs(plan.Remove)
	return plan
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}

func dedupe(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func missing(requested, found []uint) []uint {
	have := make(map[uint]bool, len(found))
	for _, id := range found {
		have[id] = true
	}
	var out []uint
	for _, id := range requested {
		if !have[id] {
			out = append(out, id)
		}
	}
	return out
}

// resolveTargets dedupes the target and checks every id names an active programme or class.
func resolveTargets(store repository.Store, target AssociationTarget) (AssociationTarget, error) {
	resolved := AssociationTarget{
		ProgrammeIDs: dedupe(target.ProgrammeIDs),
		ClassIDs:     dedupe(target.ClassIDs),
	}

	found, err := store.Associations().ExistingProgrammeIDs(resolved.ProgrammeIDs)
	if err != nil {
		return resolved, err
	}
	if m := missing(resolved.ProgrammeIDs, found); len(m) > 0 {
		return resolved, shapeErrorf("unknown programmes: %v", m)
	}

	found, err = store.Associations().ExistingClassIDs(resolved.ClassIDs)
	if err != nil {
		return resolved, err
	}
	if m := missing(resolved.ClassIDs, found); len(m) > 0 {
		return resolved, shapeErrorf("unknown classes: %v", m)
	}
	return resolved, nil
}

// AssociationEditor reconciles a questionnaire's programme and class links with a target.
type AssociationEditor struct {
	store           repository.Store
	questionnaireID uint
	target          AssociationTarget
}

// NewAssociationEditor resolves target against the catalogue. Unknown ids are a shape error.
func NewAssociationEditor(store repository.Store, questionnaireID uint, target AssociationTarget) (*AssociationEditor, error) {
	if questionnaireID == 0 {
		return nil, identityErrorf("questionnaire has not been persisted")
	}
	resolved, err := resolveTargets(store, target)
	if err != nil {
		return nil, err
	}
	return &AssociationEditor{store: store, questionnaireID: questionnaireID, target: resolved}, nil
}

// Apply loads the current links, including soft-deleted ones, and writes the diff.
func (e *AssociationEditor) Apply() (*AssociationResult, error) {
	assoc := e.store.Associations()

	programmeLinks, err := assoc.ProgrammeLinks(e.questionnaireID)
	if err != nil {
		return nil, err
	}
	classLinks, err := assoc.ClassLinks(e.questionnaireID)
	if err != nil {
		return nil, err
	}

	result := &AssociationResult{
		Programmes: planLinks(programmeRows(programmeLinks), e.target.ProgrammeIDs),
		Classes:    planLinks(classRows(classLinks), e.target.ClassIDs),
	}

	newProgrammes := make([]entity.ProgrammeQuestionnaire, 0, len(result.Programmes.Add))
	for _, id := range result.Programmes.Add {
		newProgrammes = append(newProgrammes, entity.ProgrammeQuestionnaire{ProgrammeID: id, QuestionnaireID: e.questionnaireID})
	}
	if err := assoc.CreateProgrammeLinks(newProgrammes); err != nil {
		return nil, err
	}
	if err := assoc.RestoreProgrammeLinks(result.Programmes.Restore); err != nil {
		return nil, err
	}
	if err := assoc.SoftDeleteProgrammeLinks(result.Programmes.Remove); err != nil {
		return nil, err
	}

	newClasses := make([]entity.ClassQuestionnaire, 0, len(result.Classes.Add))
	for _, id := range result.Classes.Add {
		newClasses = append(newClasses, entity.ClassQuestionnaire{ClassID: id, QuestionnaireID: e.questionnaireID})
	}
	if err := assoc.CreateClassLinks(newClasses); err != nil {
		return nil, err
	}
	if err := assoc.RestoreClassLinks(result.Classes.Restore); err != nil {
		return nil, err
	}
	if err := assoc.SoftDeleteClassLinks(result.Classes.Remove); err != nil {
		return nil, err
	}

	return result, nil
}

// VerifyAssociations checks that the questionnaire has exactly one active link per target id and no others.
func VerifyAssociations(store repository.Store, questionnaireID uint, target AssociationTarget) error {
	programmeLinks, err := store.Associations().ProgrammeLinks(questionnaireID)
	if err != nil {
		return err
	}
	if err := verifyLinks("programme", programmeRows(programmeLinks), target.ProgrammeIDs); err != nil {
		return err
	}
	classLinks, err := store.Associations().ClassLinks(questionnaireID)
	if err != nil {
		return err
	}
	return verifyLinks("class", classRows(classLinks), target.ClassIDs)
}

func verifyLinks(kind string, rows []linkRow, targets []uint) error {
	active := make(map[uint]int)
	for _, r := range rows {
		if r.Active {
			active[r.TargetID]++
		}
	}
	wanted := dedupe(targets)
	if len(active) != len(wanted) {
		return invariantErrorf("%d active %s links, expected %d", len(active), kind, len(wanted))
	}
	for _, id := range wanted {
		if active[id] != 1 {
			return invariantErrorf("%s %d has %d active links, expected 1", kind, id, active[id])
		}
	}
	return nil
}
