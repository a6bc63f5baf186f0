package bot

// Steps of the /new order dialog, in order.
const (
	StepFileName = "file_name"
	StepPages    = "pages"
	StepCopies   = "copies"
	StepPreset   = "preset"
	StepCustom   = "custom_options"
	StepDelivery = "delivery"
	StepAddress  = "address"
	StepPayment  = "payment"
	StepConfirm  = "confirm"
)
