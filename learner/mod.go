package learner

// Hyperparameters for Q-learning

const DEFAULT_LEARNING_RATE = 0.1
const DEFAULT_DISCOUNT = 0.9
const DEFAULT_EXPLORATION = 0.1
