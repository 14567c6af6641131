package advisor

import (
	"fmt"

	"lead_advisor_backend/internal/leads/domain"
)

// messageContext holds the template parameters shared by every draft.
type messageContext struct {
	brand     string
	firstName string
	// color is " na cor X" or empty.
	color string
	// puppy is "o Mel" or a generic litter reference.
	puppy string
	// cityLine is a delivery sentence with a leading space; it has a
	// nationwide fallback when the city is unknown.
	cityLine string
	// cityMention is cityLine without the fallback.
	cityMention string
}

func newMessageContext(lead LeadSnapshot, puppyName, brand string) messageContext {
	ctx := messageContext{
		brand:     brand,
		firstName: FirstName(lead.Name),
		puppy:     "um Spitz da nossa ninhada",
		cityLine:  " Temos entrega segura para todo Brasil.",
	}
	if ctx.firstName == "" {
		ctx.firstName = "tudo bem"
	}
	if lead.PreferredColor != "" {
		ctx.color = " na cor " + lead.PreferredColor
	}
	if puppyName != "" {
		ctx.puppy = "o " + puppyName
	}
	if lead.City != "" {
		ctx.cityLine = fmt.Sprintf(" Entregamos em %s sem burocracia.", lead.City)
		ctx.cityMention = ctx.cityLine
	}
	return ctx
}

func composeMessages(mc messageContext) []Message {
	texts := map[domain.MessageStyle]string{
		domain.MessageFast: fmt.Sprintf(
			"Oi %s! Somos da %s e separamos %s%s.%s Consigo te mandar fotos em minutos, pode ser?",
			mc.firstName, mc.brand, mc.puppy, mc.color, mc.cityMention),
		domain.MessagePolite: fmt.Sprintf(
			"Ola %s, tudo bem? Aqui e a %s. Vi seu interesse em um Spitz%s e reservei %s para voce.%s Posso te enviar detalhes agora?",
			mc.firstName, mc.brand, mc.color, mc.puppy, mc.cityLine),
		domain.MessagePersuasive: fmt.Sprintf(
			"Oi %s! Separei %s que combina muito com o que voce buscou%s. Ele(a) esta disponivel hoje e posso garantir condicoes especiais se avancarmos ainda esta semana.%s Te envio video e valores?",
			mc.firstName, mc.puppy, mc.color, mc.cityMention),
	}

	messages := make([]Message, 0, len(domain.MessageStyles))
	for _, style := range domain.MessageStyles {
		messages = append(messages, Message{ID: style, Label: style.Label(), Text: texts[style]})
	}
	return messages
}

func composeSequence(mc messageContext) []SequenceMessage {
	texts := map[domain.SequenceStage]string{
		domain.StageFirstContact: fmt.Sprintf(
			"Oi %s! Aqui e a %s. Recebemos seu contato e separamos %s%s para voce conhecer. Posso te mandar fotos e videos?",
			mc.firstName, mc.brand, mc.puppy, mc.color),
		domain.StageSoftFollowup: fmt.Sprintf(
			"Oi %s, tudo bem? So passando para saber se ficou alguma duvida sobre %s. Estou por aqui para ajudar!",
			mc.firstName, mc.puppy),
		domain.StageStrongFollowup: fmt.Sprintf(
			"Oi %s! Ainda estou segurando %s%s para voce, mas outras familias tambem perguntaram. Consegue me responder hoje para eu manter a reserva?",
			mc.firstName, mc.puppy, mc.color),
		domain.StageUrgency: fmt.Sprintf(
			"Oi %s! Ultimas horas para garantir %s com as condicoes especiais desta semana. Vamos fechar?",
			mc.firstName, mc.puppy),
		domain.StageVisitConfirmation: fmt.Sprintf(
			"Oi %s! Quer conhecer %s pessoalmente ou por video chamada?%s Me diga o melhor horario para confirmarmos.",
			mc.firstName, mc.puppy, mc.cityLine),
		domain.StageReservation: fmt.Sprintf(
			"Oi %s! Para reservar %s%s basta um sinal e eu envio o contrato com todas as garantias da %s. Posso te mandar os dados?",
			mc.firstName, mc.puppy, mc.color, mc.brand),
	}

	sequence := make([]SequenceMessage, 0, len(domain.SequenceStages))
	for _, stage := range domain.SequenceStages {
		sequence = append(sequence, SequenceMessage{Stage: stage, Label: stage.Label(), Text: texts[stage]})
	}
	return sequence
}
