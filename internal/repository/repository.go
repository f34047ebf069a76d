package repository

// postgres unique_violation error code
const pgErrUniqueViolationCode = "23505"
