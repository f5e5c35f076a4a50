package seed

import (
	"github.com/votecard/cardflow/logger"
	"github.com/votecard/cardflow/metadata"
	"github.com/votecard/cardflow/model"
	"github.com/votecard/cardflow/verify"
	"go.uber.org/zap"
)

const emailPattern string = `^[^@\s]+@[^@\s]+\.[^@\s]+$`

var nigerianBanks = []string{
	"Access Bank", "Citibank", "Ecobank Nigeria", "Fidelity Bank Nigeria", "First Bank of Nigeria",
	"First City Monument Bank", "Guaranty Trust Bank", "Jaiz Bank", "Keystone Bank Limited",
	"Polaris Bank", "Stanbic IBTC Bank Nigeria", "Standard Chartered Bank", "Sterling Bank",
	"SunTrust Bank Nigeria", "TAJBank", "Union Bank of Nigeria", "United Bank for Africa",
	"Unity Bank Plc", "Wema Bank", "Zenith Bank",
}

var nigerianStates = []string{"Abuja (FCT)", "Lagos", "Rivers", "Kano", "Oyo"}

var politicalParties = []string{"APC", "PDP", "LP", "NNPP", "APGA", "ADC", "SDP", "YPP"}

var titles = []string{"Mr", "Mrs", "Chief", "Dr", "Hon", "Sen"}

// Register installs the built-in workflow definitions that are not already
// present in storage.
func Register(storage metadata.Storage) error {
	for _, def := range Definitions() {
		if _, err := storage.GetWorkflowDefinition(def.Name); err == nil {
			continue
		}
		if err := def.Validate(); err != nil {
			return err
		}
		if err := storage.SaveWorkflowDefinition(def); err != nil {
			return err
		}
		logger.Info("seeded workflow definition", zap.String("workflow", def.Name))
	}
	return nil
}

func Definitions() []model.WorkflowDefinition {
	return []model.WorkflowDefinition{
		CardRedemption(),
		RedemptionDetails(),
		CardOrder(),
		DashboardOrder(),
		Login(),
	}
}

// CardRedemption is the public scratch-card redemption form. Card codes
// matching the reject pattern model known-invalid or already-used cards.
func CardRedemption() model.WorkflowDefinition {
	return model.WorkflowDefinition{
		Name: "card-redemption",
		Steps: []model.StepDefinition{
			{Label: "Card", Fields: []string{"cardCode", "serialNumber", "consent"}},
		},
		Fields: []model.FieldSpec{
			{
				Name: "cardCode", Label: "Scratch Card Code", Kind: model.FIELD_KIND_STRING, Required: true, MinLen: 1,
				Messages: map[string]string{model.RULE_REQUIRED: "Card code is required."},
			},
			{
				Name: "serialNumber", Label: "Serial Number", Kind: model.FIELD_KIND_STRING, Required: true,
				Messages: map[string]string{model.RULE_REQUIRED: "Serial number is required."},
			},
			{
				Name: "consent", Label: "Terms and Conditions", Kind: model.FIELD_KIND_BOOLEAN, RequiredTrue: true,
				Messages: map[string]string{model.RULE_REQUIRED_TRUE: "You must agree to the terms and conditions."},
			},
		},
		RejectField:    "cardCode",
		RejectPattern:  "^FAIL",
		RejectMessage:  "This card code is invalid or has already been used.",
		SuccessMessage: "Your redemption was successful! Funds will be credited to your account shortly.",
		Redirect:       "/redeem/details",
	}
}

// RedemptionDetails is the three-step payout details wizard that follows a
// successful redemption.
func RedemptionDetails() model.WorkflowDefinition {
	return model.WorkflowDefinition{
		Name: "redemption-details",
		Steps: []model.StepDefinition{
			{Label: "Personal Info", Fields: []string{"accountName", "email", "phone", "nin"}},
			{Label: "Bank Details", Fields: []string{"accountNumber", "bankName", "bvn"}},
			{Label: "Location", Fields: []string{"state", "lga"}},
		},
		Fields: []model.FieldSpec{
			{
				Name: "accountName", Label: "Full Name", Kind: model.FIELD_KIND_STRING, Required: true, MinLen: 2, MaxLen: 50,
				Messages: map[string]string{
					model.RULE_MIN_LEN: "Full name must be at least 2 characters.",
					model.RULE_MAX_LEN: "Full name cannot be more than 50 characters.",
				},
			},
			{
				Name: "email", Label: "Email", Kind: model.FIELD_KIND_STRING, Required: true, MaxLen: 50, Pattern: emailPattern,
				Messages: map[string]string{
					model.RULE_PATTERN: "Please enter a valid email address.",
					model.RULE_MAX_LEN: "Email cannot be more than 50 characters.",
				},
			},
			{
				Name: "phone", Label: "Phone Number", Kind: model.FIELD_KIND_STRING, Required: true, Pattern: `^0[789][01]\d{8}$`,
				Messages: map[string]string{model.RULE_PATTERN: "Please enter a valid Nigerian phone number."},
			},
			{
				Name: "nin", Label: "NIN", Kind: model.FIELD_KIND_STRING, Required: true, Pattern: `^\d{11}$`,
				Messages: map[string]string{model.RULE_PATTERN: "NIN must be 11 digits."},
			},
			{
				Name: "accountNumber", Label: "Account Number", Kind: model.FIELD_KIND_STRING, Required: true, Pattern: `^\d{10}$`,
				Messages: map[string]string{model.RULE_PATTERN: "Account number must be 10 digits."},
			},
			{
				Name: "bankName", Label: "Bank", Kind: model.FIELD_KIND_ENUM, Required: true, Values: nigerianBanks,
				Messages: map[string]string{
					model.RULE_REQUIRED: "Please select a bank.",
					model.RULE_ENUM:     "Please select a bank.",
				},
			},
			{
				Name: "bvn", Label: "BVN", Kind: model.FIELD_KIND_STRING, Required: true, Pattern: `^\d{11}$`,
				Messages: map[string]string{model.RULE_PATTERN: "BVN must be 11 digits."},
			},
			{
				Name: "state", Label: "State", Kind: model.FIELD_KIND_ENUM, Required: true, Values: nigerianStates,
				Messages: map[string]string{
					model.RULE_REQUIRED: "Please select a state.",
					model.RULE_ENUM:     "Please select a state.",
				},
			},
			{
				Name: "lga", Label: "LGA", Kind: model.FIELD_KIND_STRING, Required: true,
				Messages: map[string]string{model.RULE_REQUIRED: "Please select an LGA."},
			},
		},
		Verification: &model.VerificationSpec{
			Service: verify.SERVICE_FRAUD,
			Fields:  []string{"accountName", "accountNumber", "bankName", "phone"},
			Payload: map[string]any{
				"redemptionData": "account={$.accountNumber} bank={$.bankName} name={$.accountName} phone={$.phone}",
			},
		},
		SuccessMessage: "Your details were submitted successfully. Your payout is being processed.",
		Redirect:       "/",
	}
}

// CardOrder is the politician-facing two-step card order wizard. The total
// ordered quantity across items must reach the production minimum.
func CardOrder() model.WorkflowDefinition {
	return model.WorkflowDefinition{
		Name: "card-order",
		Steps: []model.StepDefinition{
			{Label: "Card Customization", Fields: []string{"title", "politicianName", "politicalParty", "politicalRole", "email", "phone"}},
			{Label: "Card Details", Fields: []string{"orderItems"}},
		},
		Fields: []model.FieldSpec{
			{
				Name: "title", Label: "Title", Kind: model.FIELD_KIND_ENUM, Required: true, Values: titles,
				Messages: map[string]string{model.RULE_REQUIRED: "Please select a title."},
			},
			{
				Name: "politicianName", Label: "Name", Kind: model.FIELD_KIND_STRING, Required: true, MinLen: 3,
				Messages: map[string]string{model.RULE_MIN_LEN: "Name must be at least 3 characters."},
			},
			{
				Name: "politicalParty", Label: "Political Party", Kind: model.FIELD_KIND_ENUM, Required: true, Values: politicalParties,
				Messages: map[string]string{model.RULE_REQUIRED: "Please select a political party."},
			},
			{
				Name: "politicalRole", Label: "Political Role", Kind: model.FIELD_KIND_STRING, Required: true,
				Messages: map[string]string{model.RULE_REQUIRED: "Political role is required."},
			},
			{
				Name: "email", Label: "Email", Kind: model.FIELD_KIND_STRING, Required: true, Pattern: emailPattern,
				Messages: map[string]string{model.RULE_PATTERN: "Please enter a valid email address."},
			},
			{
				Name: "phone", Label: "Phone Number", Kind: model.FIELD_KIND_STRING, Required: true, Pattern: `^0[789][01]\d{8}$`,
				Messages: map[string]string{model.RULE_PATTERN: "Please enter a valid Nigerian phone number."},
			},
			{
				Name: "orderItems", Label: "Order Items", Kind: model.FIELD_KIND_ARRAY, Required: true, MinLen: 1,
				Messages: map[string]string{
					model.RULE_KIND:    "Invalid JSON for order items.",
					model.RULE_MIN_LEN: "Invalid order items structure.",
				},
			},
		},
		Rules: []model.RecordRule{
			{
				Anchor:     "orderItems",
				Expression: `(function(){var t=0;for(var i=0;i<$.orderItems.length;i++){t+=Number($.orderItems[i].quantity)||0;}return t>=100;})()`,
				Message:    "Total quantity must be at least 100.",
			},
		},
		Verification: &model.VerificationSpec{
			Service: verify.SERVICE_LEGITIMACY,
			Fields:  []string{"politicianName", "politicalParty", "politicalRole", "email", "phone", "orderItems"},
			Payload: map[string]any{
				"politicianName": "{$.politicianName}",
				"politicalParty": "{$.politicalParty}",
				"politicalRole":  "{$.politicalRole}",
				"email":          "{$.email}",
				"phone":          "{$.phone}",
				"orderItems":     "{$.orderItems}",
			},
		},
		SuccessMessage: "Your order has been placed and is pending verification.",
		Redirect:       "/dashboard",
	}
}

// DashboardOrder is the single-step reorder form on the dashboard.
func DashboardOrder() model.WorkflowDefinition {
	return model.WorkflowDefinition{
		Name: "dashboard-order",
		Steps: []model.StepDefinition{
			{Label: "Order", Fields: []string{"denomination", "quantity"}},
		},
		Fields: []model.FieldSpec{
			{
				Name: "denomination", Label: "Denomination", Kind: model.FIELD_KIND_ENUM, Required: true,
				Values: []string{"500", "1000", "2000", "5000"},
				Messages: map[string]string{
					model.RULE_REQUIRED: "Please select a denomination.",
					model.RULE_ENUM:     "Please select a denomination.",
				},
			},
			{
				Name: "quantity", Label: "Quantity", Kind: model.FIELD_KIND_NUMBER, Required: true, Min: model.Float(100),
				Messages: map[string]string{model.RULE_MIN: "Quantity must be at least 100."},
			},
		},
		SuccessMessage: "Your order has been created.",
		Redirect:       "/dashboard/orders",
	}
}

// Login is the dashboard sign-in form.
func Login() model.WorkflowDefinition {
	return model.WorkflowDefinition{
		Name: "login",
		Steps: []model.StepDefinition{
			{Label: "Login", Fields: []string{"email", "password"}},
		},
		Fields: []model.FieldSpec{
			{
				Name: "email", Label: "Email", Kind: model.FIELD_KIND_STRING, Required: true, Pattern: emailPattern,
				Messages: map[string]string{model.RULE_PATTERN: "Please enter a valid email address."},
			},
			{
				Name: "password", Label: "Password", Kind: model.FIELD_KIND_STRING, Required: true,
				Messages: map[string]string{model.RULE_REQUIRED: "Password is required."},
			},
		},
		SuccessMessage: "Login successful.",
		Redirect:       "/dashboard",
	}
}
