package orderview

import "github.com/shophub/shopctl/internal/models"

// DefaultMilestones is the reference ordering the progress view renders.
// Statuses the server reports at a finer grain collapse onto these stages,
// see canonicalStage.
var DefaultMilestones = []models.OrderStatus{
	models.OrderStatusProcessing,
	models.OrderStatusConfirmed,
	models.OrderStatusPickedUp,
	models.OrderStatusInTransit,
	models.OrderStatusDelivered,
}

var stageAliases = map[models.OrderStatus]models.OrderStatus{
	models.OrderStatusAssigned:       models.OrderStatusConfirmed,
	models.OrderStatusCollected:      models.OrderStatusPickedUp,
	models.OrderStatusShipped:        models.OrderStatusInTransit,
	models.OrderStatusOutForDelivery: models.OrderStatusInTransit,
}

func canonicalStage(status models.OrderStatus) models.OrderStatus {
	if stage, ok := stageAliases[status]; ok {
		return stage
	}
	return status
}

type Milestone struct {
	Status    models.OrderStatus
	Completed bool
	Current   bool
}

// Timeline is the derived progress view for one order. Cancelled is an
// explicit terminal branch: no milestone is completed and the caller renders
// a dedicated cancelled state instead of the progress bar. Known is false
// when the status matched neither a milestone nor cancellation.
type Timeline struct {
	Steps     []Milestone
	Cancelled bool
	Known     bool
}

// DeriveTimeline maps an order's current status onto milestones, flagging
// each as completed/current. For a status at reference index i, exactly the
// milestones at index <= i are completed and the one at index i is current.
func DeriveTimeline(status models.OrderStatus, milestones []models.OrderStatus) Timeline {
	if status == models.OrderStatusCancelled {
		return Timeline{Steps: bareSteps(milestones), Cancelled: true, Known: true}
	}

	stage := canonicalStage(status)
	currentIdx := -1
	for i, m := range milestones {
		if m == stage {
			currentIdx = i
			break
		}
	}
	if currentIdx == -1 {
		return Timeline{Steps: bareSteps(milestones)}
	}

	steps := make([]Milestone, len(milestones))
	for i, m := range milestones {
		steps[i] = Milestone{
			Status:    m,
			Completed: i <= currentIdx,
			Current:   i == currentIdx,
		}
	}
	return Timeline{Steps: steps, Known: true}
}

func bareSteps(milestones []models.OrderStatus) []Milestone {
	steps := make([]Milestone, len(milestones))
	for i, m := range milestones {
		steps[i] = Milestone{Status: m}
	}
	return steps
}
