package domain

// MessageStyle identifies one of the three tone variants of an outreach draft.
type MessageStyle string

const (
	MessageFast       MessageStyle = "fast"
	MessagePolite     MessageStyle = "polite"
	MessagePersuasive MessageStyle = "persuasive"
)

// MessageStyles is the fixed output order of tone variants.
var MessageStyles = []MessageStyle{MessageFast, MessagePolite, MessagePersuasive}

var messageStyleLabels = map[MessageStyle]string{
	MessageFast:       "Rapido",
	MessagePolite:     "Educado",
	MessagePersuasive: "Persuasivo",
}

func (m MessageStyle) IsValid() bool {
	_, ok := messageStyleLabels[m]
	return ok
}

func (m MessageStyle) Label() string {
	return messageStyleLabels[m]
}

// SequenceStage identifies one step of the drip campaign.
type SequenceStage string

const (
	StageFirstContact      SequenceStage = "first_contact"
	StageSoftFollowup      SequenceStage = "soft_followup"
	StageStrongFollowup    SequenceStage = "strong_followup"
	StageUrgency           SequenceStage = "urgency"
	StageVisitConfirmation SequenceStage = "visit_confirmation"
	StageReservation       SequenceStage = "reservation"
)

// SequenceStages is the fixed order of drip campaign steps.
var SequenceStages = []SequenceStage{
	StageFirstContact,
	StageSoftFollowup,
	StageStrongFollowup,
	StageUrgency,
	StageVisitConfirmation,
	StageReservation,
}

var sequenceStageLabels = map[SequenceStage]string{
	StageFirstContact:      "Primeiro contato",
	StageSoftFollowup:      "Follow-up leve",
	StageStrongFollowup:    "Follow-up forte",
	StageUrgency:           "Urgencia",
	StageVisitConfirmation: "Confirmacao de visita",
	StageReservation:       "Reserva",
}

func (s SequenceStage) IsValid() bool {
	_, ok := sequenceStageLabels[s]
	return ok
}

func (s SequenceStage) Label() string {
	return sequenceStageLabels[s]
}
