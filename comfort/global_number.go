package comfort

// offset between degree C and K
const kelvin = 273.15

// 1 met, W/m2
const metUnit = 58.15

// 1 clo, m2K/W
const cloUnit = 0.155

// standard atmospheric pressure, Pa
const atmosphericPressure = 101325.0

// molar mass ratio of water vapour to dry air
const molarRatio = 0.62198

// radiant temperature used when a heat-flux field replaces the wall estimate, degree C
const DefaultRadiantTemperature = 20.0

// iteration cap of the clothing surface temperature loop
const MaxIterations = 150

// convergence tolerance of the clothing surface temperature loop, |XN - XF|
const ConvergenceTolerance = 0.0015

// lower velocity bound of the draught rate formula, m/s
const minDraughtVelocity = 0.05
