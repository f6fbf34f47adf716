package flow

import (
	"fmt"

	"github.com/kushtati/kushtati-immo/internal/format"
	"github.com/kushtati/kushtati-immo/internal/lease"
	"github.com/kushtati/kushtati-immo/internal/payment"
)

// PayPalURL is where wallet payments continue.
const PayPalURL = "https://www.paypal.com"

type outcome struct {
	message     string
	redirectURL string
}

// outcomeFor builds the confirmation shown once rec is settled with m.
func outcomeFor(m payment.Method, rec *payment.Record, l lease.Lease) outcome {
	amount := format.Amount(rec.AmountDue)

	switch m {
	case payment.MethodCard:
		return outcome{message: fmt.Sprintf(
			"✓ Paiement de %s effectué par carte bancaire\n\nTransaction approuvée\nNuméro de confirmation : %s\n\nUn reçu vous a été envoyé par email.",
			amount, rec.TransactionID)}
	case payment.MethodTransfer:
		return outcome{message: fmt.Sprintf(
			"✓ Instructions de virement envoyées\n\nMontant : %s\nBénéficiaire : %s\n\nVeuillez effectuer le virement et conserver votre preuve de paiement.\nLe statut sera mis à jour après réception.",
			amount, l.Landlord)}
	case payment.MethodOrangeMoney, payment.MethodMTNMoney:
		return outcome{message: fmt.Sprintf(
			"✓ Demande de paiement %s envoyée\n\nMontant : %s\nNuméro : %s\n\nVérifiez votre téléphone pour confirmer la transaction avec votre code PIN.",
			m.Label(), amount, l.LandlordPhone)}
	case payment.MethodPayPal:
		return outcome{
			message: fmt.Sprintf(
				"✓ Redirection vers PayPal en cours...\n\nMontant : %s\n\nVous allez être redirigé vers la page de paiement sécurisé PayPal.",
				amount),
			redirectURL: PayPalURL,
		}
	case payment.MethodCash:
		return outcome{message: fmt.Sprintf(
			"✓ Paiement en espèces enregistré\n\nMontant : %s\n\nN'oubliez pas de demander un reçu lors de la remise des espèces à votre propriétaire.\n\nContact : %s\nTél : %s",
			amount, l.Landlord, l.LandlordPhone)}
	}

	return outcome{message: "Méthode de paiement non reconnue"}
}

// Instructions is the hint shown under a method before the tenant submits.
func Instructions(m payment.Method, l lease.Lease) string {
	switch m {
	case payment.MethodCard:
		return "Paiement sécurisé par carte Visa ou Mastercard."
	case payment.MethodTransfer:
		return fmt.Sprintf("Virement au nom de %s. Le statut sera mis à jour après réception.", l.Landlord)
	case payment.MethodOrangeMoney, payment.MethodMTNMoney:
		return fmt.Sprintf("Une demande sera envoyée au %s. Confirmez avec votre code PIN.", l.LandlordPhone)
	case payment.MethodPayPal:
		return "Vous serez redirigé vers PayPal pour finaliser le paiement."
	case payment.MethodCash:
		return fmt.Sprintf("Remettez les espèces à %s et demandez un reçu.", l.Landlord)
	}

	return ""
}
