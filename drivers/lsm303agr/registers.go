package lsm303agr

// I2C addresses of the two dies.
const (
	AccelAddress = 0x19
	MagAddress   = 0x1E
)

// Identity values.
const (
	AccelID = 0x33
	MagID   = 0x40
)

// Accelerometer registers.
const (
	regWhoAmIA  = 0x0F
	regCtrl1A   = 0x20
	regCtrl4A   = 0x23
	regStatusA  = 0x27
	regOutXLA   = 0x28
	regWhoAmIM  = 0x4F
	autoIncrAcc = 0x80 // sub-address MSB enables auto-increment
)

// CTRL_REG1_A fields.
const (
	ctrl1ODRPos = 4
	ctrl1LPen   = 1 << 3
	ctrl1XYZen  = 0x07
)

// CTRL_REG4_A fields.
const (
	ctrl4BDU = 1 << 7
	ctrl4HR  = 1 << 3
)

// STATUS_REG_A bits.
const (
	statusZYXDA = 1 << 3
	statusZYXOR = 1 << 7
)
